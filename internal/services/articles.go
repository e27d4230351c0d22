package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tbourn/go-news-client/internal/api"
	"github.com/tbourn/go-news-client/internal/domain"
)

// ArticleListParams are the query parameters accepted by the article list
// endpoint. Zero values are omitted from the query string, which lets callers
// pass partial parameter sets and rely on server defaults.
type ArticleListParams struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID uint
	TagID      uint
	Lang       string
	OrderBy    string
	OrderDir   string // asc | desc
}

// Values encodes the parameters as a URL query, omitting zero values.
func (p ArticleListParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.CategoryID > 0 {
		q.Set("category_id", strconv.FormatUint(uint64(p.CategoryID), 10))
	}
	if p.TagID > 0 {
		q.Set("tag_id", strconv.FormatUint(uint64(p.TagID), 10))
	}
	if p.Lang != "" {
		q.Set("lang", p.Lang)
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.OrderDir != "" {
		q.Set("order_dir", p.OrderDir)
	}
	return q
}

// ArticleInput is the payload for creating or updating an article through the
// admin endpoints.
type ArticleInput struct {
	Status        string                      `json:"status,omitempty"`
	FeaturedImage string                      `json:"featured_image,omitempty"`
	IsFeatured    bool                        `json:"is_featured,omitempty"`
	CategoryIDs   []uint                      `json:"category_ids,omitempty"`
	TagIDs        []uint                      `json:"tag_ids,omitempty"`
	Translations  []domain.ArticleTranslation `json:"translations,omitempty"`
}

// ArticleService maps article operations onto the remote API.
type ArticleService struct {
	API *api.Client
}

// List fetches one page of articles matching params.
func (s *ArticleService) List(ctx context.Context, params ArticleListParams) (domain.Page[domain.Article], error) {
	var out domain.Page[domain.Article]
	if err := s.API.Get(ctx, pathArticles, params.Values(), &out); err != nil {
		return domain.Page[domain.Article]{}, err
	}
	return out, nil
}

// Get fetches a single article by ID.
func (s *ArticleService) Get(ctx context.Context, id uint) (domain.Article, error) {
	var out domain.Envelope[domain.Article]
	if err := s.API.Get(ctx, articlePath(id), nil, &out); err != nil {
		return domain.Article{}, err
	}
	return out.Data, nil
}

// GetBySlug fetches a single article by its localized slug.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (domain.Article, error) {
	var out domain.Envelope[domain.Article]
	if err := s.API.Get(ctx, articleSlugPath(slug), nil, &out); err != nil {
		return domain.Article{}, err
	}
	return out.Data, nil
}

// Create creates an article (editor/admin only).
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (domain.Article, error) {
	var out domain.Envelope[domain.Article]
	if err := s.API.Post(ctx, pathAdminArticles, in, &out); err != nil {
		return domain.Article{}, err
	}
	return out.Data, nil
}

// Update replaces an article's fields (editor/admin only).
func (s *ArticleService) Update(ctx context.Context, id uint, in ArticleInput) (domain.Article, error) {
	var out domain.Envelope[domain.Article]
	if err := s.API.Put(ctx, adminArticlePath(id), in, &out); err != nil {
		return domain.Article{}, err
	}
	return out.Data, nil
}

// Delete removes an article (editor/admin only).
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	return s.API.Delete(ctx, adminArticlePath(id), nil)
}
