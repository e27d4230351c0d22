// Package domain defines the entity types exchanged with the remote news API.
// These are client-side views of the server's resources: articles, tags,
// categories, languages, and users, together with the JSON envelopes the API
// wraps them in. Field names and JSON tags follow the wire contract exactly.
package domain

import "time"

// User represents an authenticated account as returned by the auth and
// /user endpoints.
//
// Fields:
//   - ID: numeric primary key assigned by the server.
//   - Username / Email: unique identity fields.
//   - FirstName / LastName / Avatar: optional profile data.
//   - Role: "admin", "editor", or "user"; gates access to /admin routes.
//   - Status: "active" or "disabled".
type User struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
}

// Language describes one locale supported by the site.
type Language struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsActive   bool   `json:"is_active"`
	IsDefault  bool   `json:"is_default"`
	Direction  string `json:"direction"` // ltr or rtl
	SortOrder  int    `json:"sort_order"`
}

// Article is the language-independent article resource. Locale-specific
// content lives in Translations; pick one with Translation().
type Article struct {
	ID            uint                 `json:"id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	UserID        uint                 `json:"user_id"`
	User          User                 `json:"user"`
	Status        string               `json:"status"` // draft, published, archived
	PublishedAt   *time.Time           `json:"published_at"`
	FeaturedImage string               `json:"featured_image"`
	ViewCount     int                  `json:"view_count"`
	IsFeatured    bool                 `json:"is_featured"`
	Translations  []ArticleTranslation `json:"translations"`
	Categories    []Category           `json:"categories"`
	Tags          []Tag                `json:"tags"`
}

// ArticleTranslation carries the localized content of an article for a
// single language code.
type ArticleTranslation struct {
	ID              uint   `json:"id"`
	ArticleID       uint   `json:"article_id"`
	LanguageCode    string `json:"language_code"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

// Tag is a flat label attached to articles, localized via Translations.
type Tag struct {
	ID           uint             `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Translations []TagTranslation `json:"translations"`
}

// TagTranslation is the localized name/slug pair of a tag.
type TagTranslation struct {
	ID           uint   `json:"id"`
	TagID        uint   `json:"tag_id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
}

// Category is a hierarchical grouping of articles. ParentID is nil for
// top-level categories.
type Category struct {
	ID           uint                  `json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ParentID     *uint                 `json:"parent_id"`
	Parent       *Category             `json:"parent,omitempty"`
	Translations []CategoryTranslation `json:"translations"`
}

// CategoryTranslation is the localized presentation of a category.
type CategoryTranslation struct {
	ID           uint   `json:"id"`
	CategoryID   uint   `json:"category_id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
}

// Translation returns the article translation matching code, falling back to
// the first available translation when the requested locale is absent. The
// boolean reports whether any translation was found at all.
func (a Article) Translation(code string) (ArticleTranslation, bool) {
	for _, tr := range a.Translations {
		if tr.LanguageCode == code {
			return tr, true
		}
	}
	if len(a.Translations) > 0 {
		return a.Translations[0], true
	}
	return ArticleTranslation{}, false
}

// Translation returns the tag translation for code with first-available
// fallback, mirroring Article.Translation.
func (t Tag) Translation(code string) (TagTranslation, bool) {
	for _, tr := range t.Translations {
		if tr.LanguageCode == code {
			return tr, true
		}
	}
	if len(t.Translations) > 0 {
		return t.Translations[0], true
	}
	return TagTranslation{}, false
}

// Translation returns the category translation for code with first-available
// fallback.
func (c Category) Translation(code string) (CategoryTranslation, bool) {
	for _, tr := range c.Translations {
		if tr.LanguageCode == code {
			return tr, true
		}
	}
	if len(c.Translations) > 0 {
		return c.Translations[0], true
	}
	return CategoryTranslation{}, false
}
