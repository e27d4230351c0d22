package services

import (
	"context"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
)

// LanguageService maps locale operations onto the remote API. The language
// list is small and unpaginated; the server still wraps it in the standard
// pagination envelope.
type LanguageService struct {
	API *api.Client
}

// List fetches all supported languages.
func (s *LanguageService) List(ctx context.Context) ([]domain.Language, error) {
	var out domain.Page[domain.Language]
	if err := s.API.Get(ctx, pathLanguages, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Get fetches a single language by ID.
func (s *LanguageService) Get(ctx context.Context, id uint) (domain.Language, error) {
	var out domain.Envelope[domain.Language]
	if err := s.API.Get(ctx, languagePath(id), nil, &out); err != nil {
		return domain.Language{}, err
	}
	return out.Data, nil
}

// GetByCode fetches a single language by its locale code.
func (s *LanguageService) GetByCode(ctx context.Context, code string) (domain.Language, error) {
	var out domain.Envelope[domain.Language]
	if err := s.API.Get(ctx, languageCodePath(code), nil, &out); err != nil {
		return domain.Language{}, err
	}
	return out.Data, nil
}
