// Package mockapi implements an in-memory stand-in for the remote news API,
// used for local development and end-to-end exercising of the client. It
// serves the same routes, envelopes, and error bodies as the production
// server, backed by seeded fixtures instead of a database.
package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/services"
	"github.com/tbourn/go-news-client/internal/utils"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrValidation       = errors.New("validation failed")
	ErrArticleInUse     = errors.New("article is referenced")
	ErrTranslationEmpty = errors.New("at least one translation is required")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	tokenTTL = 24 * time.Hour
)

// account pairs a user profile with its plaintext dev password.
type account struct {
	user     domain.User
	password string
}

// Store holds all mock fixtures behind one mutex. IDs are monotonically
// assigned; deletes do not reuse them.
type Store struct {
	mu sync.Mutex

	secret []byte
	now    func() time.Time

	accounts   []account
	languages  []domain.Language
	articles   []domain.Article
	tags       []domain.Tag
	categories []domain.Category

	nextUserID    uint
	nextArticleID uint
	nextTagID     uint
	nextCatID     uint
	nextTransID   uint
}

// NewStore returns a Store seeded with demo fixtures. The secret signs the
// dev bearer tokens; it has no production value.
func NewStore(secret string) *Store {
	s := &Store{
		secret: []byte(secret),
		now:    time.Now,
	}
	s.seed()
	return s
}

// ArticleQuery mirrors the list endpoint's query parameters.
type ArticleQuery struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID uint
	TagID      uint
	Lang       string
}

// Authenticate checks credentials and issues a signed dev token.
func (s *Store) Authenticate(email, password string) (domain.LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.user.Email == email && acc.password == password {
			token, err := s.issueToken(acc.user.ID)
			if err != nil {
				return domain.LoginResult{}, err
			}
			return domain.LoginResult{Token: token, User: acc.user}, nil
		}
	}
	return domain.LoginResult{}, ErrBadCredentials
}

// Register creates a new reader account. It does not log the account in.
func (s *Store) Register(reg domain.Registration) (domain.User, error) {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return domain.User{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.user.Email == reg.Email {
			return domain.User{}, ErrEmailTaken
		}
		if acc.user.Username == reg.Username {
			return domain.User{}, ErrUsernameTaken
		}
	}

	s.nextUserID++
	now := s.now().UTC()
	u := domain.User{
		ID:        s.nextUserID,
		CreatedAt: now,
		UpdatedAt: now,
		Username:  reg.Username,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Role:      "user",
		Status:    "active",
	}
	s.accounts = append(s.accounts, account{user: u, password: reg.Password})
	return u, nil
}

// UserByToken validates a bearer token and returns its user.
func (s *Store) UserByToken(token string) (domain.User, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return domain.User{}, ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Username == claims.Subject {
			return acc.user, nil
		}
	}
	return domain.User{}, ErrInvalidToken
}

// ListArticles returns one page of published articles matching q.
func (s *Store) ListArticles(q ArticleQuery) domain.Page[domain.Article] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Article
	for _, a := range s.articles {
		if !s.articleMatches(a, q) {
			continue
		}
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, q.Page, q.PageSize)
}

// ArticleByID returns one article.
func (s *Store) ArticleByID(id uint) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Article{}, ErrNotFound
}

// ArticleBySlug returns the article carrying a translation with the slug.
func (s *Store) ArticleBySlug(slug string) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		for _, tr := range a.Translations {
			if tr.Slug == slug {
				return a, nil
			}
		}
	}
	return domain.Article{}, ErrNotFound
}

// CreateArticle adds an article authored by the given user.
func (s *Store) CreateArticle(in services.ArticleInput, author domain.User) (domain.Article, error) {
	if len(in.Translations) == 0 {
		return domain.Article{}, ErrTranslationEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextArticleID++
	now := s.now().UTC()
	a := domain.Article{
		ID:            s.nextArticleID,
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        author.ID,
		User:          author,
		Status:        in.Status,
		FeaturedImage: in.FeaturedImage,
		IsFeatured:    in.IsFeatured,
		Categories:    s.categoriesByIDs(in.CategoryIDs),
		Tags:          s.tagsByIDs(in.TagIDs),
	}
	if a.Status == "" {
		a.Status = "draft"
	}
	if a.Status == "published" {
		a.PublishedAt = &now
	}
	for _, tr := range in.Translations {
		s.nextTransID++
		tr.ID = s.nextTransID
		tr.ArticleID = a.ID
		if tr.Slug == "" {
			tr.Slug = slugify(tr.Title)
		}
		a.Translations = append(a.Translations, tr)
	}
	s.articles = append(s.articles, a)
	return a, nil
}

// UpdateArticle replaces the mutable fields of an article.
func (s *Store) UpdateArticle(id uint, in services.ArticleInput) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.articles {
		if s.articles[i].ID != id {
			continue
		}
		a := &s.articles[i]
		now := s.now().UTC()
		a.UpdatedAt = now
		if in.Status != "" {
			if in.Status == "published" && a.PublishedAt == nil {
				a.PublishedAt = &now
			}
			a.Status = in.Status
		}
		if in.FeaturedImage != "" {
			a.FeaturedImage = in.FeaturedImage
		}
		a.IsFeatured = in.IsFeatured
		if in.TagIDs != nil {
			a.Tags = s.tagsByIDs(in.TagIDs)
		}
		if in.CategoryIDs != nil {
			a.Categories = s.categoriesByIDs(in.CategoryIDs)
		}
		if len(in.Translations) > 0 {
			a.Translations = a.Translations[:0]
			for _, tr := range in.Translations {
				s.nextTransID++
				tr.ID = s.nextTransID
				tr.ArticleID = a.ID
				if tr.Slug == "" {
					tr.Slug = slugify(tr.Title)
				}
				a.Translations = append(a.Translations, tr)
			}
		}
		return *a, nil
	}
	return domain.Article{}, ErrNotFound
}

// DeleteArticle removes an article, returning the removed entity.
func (s *Store) DeleteArticle(id uint) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			removed := s.articles[i]
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return removed, nil
		}
	}
	return domain.Article{}, ErrNotFound
}

// ListTags returns one page of tags.
func (s *Store) ListTags(page, pageSize int) domain.Page[domain.Tag] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paginate(s.tags, page, pageSize)
}

// TagByID returns one tag.
func (s *Store) TagByID(id uint) (domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Tag{}, ErrNotFound
}

// CreateTag adds a tag with one translation in lang (default "en").
func (s *Store) CreateTag(in services.TagInput, lang string) (domain.Tag, error) {
	if in.Name == "" {
		return domain.Tag{}, ErrValidation
	}
	if lang == "" {
		lang = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTagID++
	s.nextTransID++
	now := s.now().UTC()
	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}
	t := domain.Tag{
		ID:        s.nextTagID,
		CreatedAt: now,
		UpdatedAt: now,
		Translations: []domain.TagTranslation{{
			ID:           s.nextTransID,
			TagID:        s.nextTagID,
			LanguageCode: lang,
			Name:         in.Name,
			Slug:         slug,
		}},
	}
	s.tags = append(s.tags, t)
	return t, nil
}

// UpdateTag replaces a tag's translation for lang (default "en").
func (s *Store) UpdateTag(id uint, in services.TagInput, lang string) (domain.Tag, error) {
	if in.Name == "" {
		return domain.Tag{}, ErrValidation
	}
	if lang == "" {
		lang = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tags {
		if s.tags[i].ID != id {
			continue
		}
		t := &s.tags[i]
		t.UpdatedAt = s.now().UTC()
		slug := in.Slug
		if slug == "" {
			slug = slugify(in.Name)
		}
		for j := range t.Translations {
			if t.Translations[j].LanguageCode == lang {
				t.Translations[j].Name = in.Name
				t.Translations[j].Slug = slug
				return *t, nil
			}
		}
		s.nextTransID++
		t.Translations = append(t.Translations, domain.TagTranslation{
			ID:           s.nextTransID,
			TagID:        t.ID,
			LanguageCode: lang,
			Name:         in.Name,
			Slug:         slug,
		})
		return *t, nil
	}
	return domain.Tag{}, ErrNotFound
}

// DeleteTag removes a tag and detaches it from articles, returning the
// removed entity.
func (s *Store) DeleteTag(id uint) (domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tags {
		if s.tags[i].ID != id {
			continue
		}
		removed := s.tags[i]
		s.tags = append(s.tags[:i], s.tags[i+1:]...)
		for j := range s.articles {
			a := &s.articles[j]
			for k := range a.Tags {
				if a.Tags[k].ID == id {
					a.Tags = append(a.Tags[:k], a.Tags[k+1:]...)
					break
				}
			}
		}
		return removed, nil
	}
	return domain.Tag{}, ErrNotFound
}

// ListCategories returns one page of categories.
func (s *Store) ListCategories(page, pageSize int) domain.Page[domain.Category] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paginate(s.categories, page, pageSize)
}

// CategoryByID returns one category.
func (s *Store) CategoryByID(id uint) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, ErrNotFound
}

// CreateCategory adds a category with one translation in lang (default "en").
func (s *Store) CreateCategory(in services.CategoryInput, lang string) (domain.Category, error) {
	if in.Name == "" {
		return domain.Category{}, ErrValidation
	}
	if lang == "" {
		lang = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCatID++
	s.nextTransID++
	now := s.now().UTC()
	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Name)
	}
	c := domain.Category{
		ID:        s.nextCatID,
		CreatedAt: now,
		UpdatedAt: now,
		ParentID:  in.ParentID,
		Translations: []domain.CategoryTranslation{{
			ID:           s.nextTransID,
			CategoryID:   s.nextCatID,
			LanguageCode: lang,
			Name:         in.Name,
			Slug:         slug,
			Description:  in.Description,
		}},
	}
	s.categories = append(s.categories, c)
	return c, nil
}

// UpdateCategory replaces a category's translation for lang (default "en").
func (s *Store) UpdateCategory(id uint, in services.CategoryInput, lang string) (domain.Category, error) {
	if in.Name == "" {
		return domain.Category{}, ErrValidation
	}
	if lang == "" {
		lang = "en"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		c := &s.categories[i]
		c.UpdatedAt = s.now().UTC()
		if in.ParentID != nil {
			c.ParentID = in.ParentID
		}
		slug := in.Slug
		if slug == "" {
			slug = slugify(in.Name)
		}
		for j := range c.Translations {
			if c.Translations[j].LanguageCode == lang {
				c.Translations[j].Name = in.Name
				c.Translations[j].Slug = slug
				c.Translations[j].Description = in.Description
				return *c, nil
			}
		}
		s.nextTransID++
		c.Translations = append(c.Translations, domain.CategoryTranslation{
			ID:           s.nextTransID,
			CategoryID:   c.ID,
			LanguageCode: lang,
			Name:         in.Name,
			Slug:         slug,
			Description:  in.Description,
		})
		return *c, nil
	}
	return domain.Category{}, ErrNotFound
}

// DeleteCategory removes a category, returning the removed entity.
func (s *Store) DeleteCategory(id uint) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			removed := s.categories[i]
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return removed, nil
		}
	}
	return domain.Category{}, ErrNotFound
}

// Languages returns all supported languages wrapped in a page envelope.
func (s *Store) Languages() domain.Page[domain.Language] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paginate(s.languages, 1, maxPageSize)
}

// LanguageByID returns one language.
func (s *Store) LanguageByID(id uint) (domain.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.languages {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Language{}, ErrNotFound
}

// LanguageByCode returns one language by locale code.
func (s *Store) LanguageByCode(code string) (domain.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.languages {
		if l.Code == code {
			return l, nil
		}
	}
	return domain.Language{}, ErrNotFound
}

// ---- internals ----

// issueToken signs an HS256 token carrying the username. Caller holds s.mu.
func (s *Store) issueToken(userID uint) (string, error) {
	var sub string
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			sub = acc.user.Username
			break
		}
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// articleMatches applies the list filters. Caller holds s.mu.
func (s *Store) articleMatches(a domain.Article, q ArticleQuery) bool {
	if a.Status != "published" {
		return false
	}
	if q.TagID != 0 {
		found := false
		for _, t := range a.Tags {
			if t.ID == q.TagID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.CategoryID != 0 {
		found := false
		for _, cat := range a.Categories {
			if cat.ID == q.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Lang != "" {
		found := false
		for _, tr := range a.Translations {
			if tr.LanguageCode == q.Lang {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		found := false
		for _, tr := range a.Translations {
			if strings.Contains(strings.ToLower(tr.Title), needle) ||
				strings.Contains(strings.ToLower(tr.Excerpt), needle) ||
				strings.Contains(strings.ToLower(tr.Content), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// tagsByIDs resolves tag IDs to full tags, skipping unknown IDs. Caller
// holds s.mu.
func (s *Store) tagsByIDs(ids []uint) []domain.Tag {
	var out []domain.Tag
	for _, id := range ids {
		for _, t := range s.tags {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// categoriesByIDs resolves category IDs, skipping unknown IDs. Caller
// holds s.mu.
func (s *Store) categoriesByIDs(ids []uint) []domain.Category {
	var out []domain.Category
	for _, id := range ids {
		for _, c := range s.categories {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// paginate slices items into the standard pagination envelope.
func paginate[T any](items []T, page, pageSize int) domain.Page[T] {
	page = utils.ClampPage(page)
	pageSize = utils.ClampPageSize(pageSize, defaultPageSize, maxPageSize)

	total := int64(len(items))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return domain.Page[T]{
		Data:       out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: utils.TotalPages(total, pageSize),
	}
}

// slugify lowercases s and collapses non-alphanumeric runs into hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
