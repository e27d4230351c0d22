package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
)

// ListParams are the query parameters shared by the tag and category list
// endpoints. Zero values are omitted.
type ListParams struct {
	Page     int
	PageSize int
	Lang     string
}

// Values encodes the parameters as a URL query, omitting zero values.
func (p ListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Lang != "" {
		q.Set("lang", p.Lang)
	}
	return q
}

// TagInput is the payload for creating or updating a tag.
type TagInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    *uint  `json:"parent_id,omitempty"`
}

// TagService maps tag operations onto the remote API.
type TagService struct {
	API *api.Client
}

// List fetches one page of tags.
func (s *TagService) List(ctx context.Context, params ListParams) (domain.Page[domain.Tag], error) {
	var out domain.Page[domain.Tag]
	if err := s.API.Get(ctx, pathTags, params.Values(), &out); err != nil {
		return domain.Page[domain.Tag]{}, err
	}
	return out, nil
}

// Get fetches a single tag by ID.
func (s *TagService) Get(ctx context.Context, id uint) (domain.Tag, error) {
	var out domain.Envelope[domain.Tag]
	if err := s.API.Get(ctx, tagPath(id), nil, &out); err != nil {
		return domain.Tag{}, err
	}
	return out.Data, nil
}

// Create creates a tag (editor/admin only).
func (s *TagService) Create(ctx context.Context, in TagInput) (domain.Tag, error) {
	var out domain.Envelope[domain.Tag]
	if err := s.API.Post(ctx, pathAdminTags, in, &out); err != nil {
		return domain.Tag{}, err
	}
	return out.Data, nil
}

// Update replaces a tag's fields (editor/admin only).
func (s *TagService) Update(ctx context.Context, id uint, in TagInput) (domain.Tag, error) {
	var out domain.Envelope[domain.Tag]
	if err := s.API.Put(ctx, adminTagPath(id), in, &out); err != nil {
		return domain.Tag{}, err
	}
	return out.Data, nil
}

// Delete removes a tag (editor/admin only).
func (s *TagService) Delete(ctx context.Context, id uint) error {
	return s.API.Delete(ctx, adminTagPath(id), nil)
}

// CategoryService maps category operations onto the remote API.
type CategoryService struct {
	API *api.Client
}

// List fetches one page of categories.
func (s *CategoryService) List(ctx context.Context, params ListParams) (domain.Page[domain.Category], error) {
	var out domain.Page[domain.Category]
	if err := s.API.Get(ctx, pathCategories, params.Values(), &out); err != nil {
		return domain.Page[domain.Category]{}, err
	}
	return out, nil
}

// Get fetches a single category by ID.
func (s *CategoryService) Get(ctx context.Context, id uint) (domain.Category, error) {
	var out domain.Envelope[domain.Category]
	if err := s.API.Get(ctx, categoryPath(id), nil, &out); err != nil {
		return domain.Category{}, err
	}
	return out.Data, nil
}

// Create creates a category (editor/admin only).
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (domain.Category, error) {
	var out domain.Envelope[domain.Category]
	if err := s.API.Post(ctx, pathAdminCategories, in, &out); err != nil {
		return domain.Category{}, err
	}
	return out.Data, nil
}

// Update replaces a category's fields (editor/admin only).
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (domain.Category, error) {
	var out domain.Envelope[domain.Category]
	if err := s.API.Put(ctx, adminCategoryPath(id), in, &out); err != nil {
		return domain.Category{}, err
	}
	return out.Data, nil
}

// Delete removes a category (editor/admin only).
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.API.Delete(ctx, adminCategoryPath(id), nil)
}
