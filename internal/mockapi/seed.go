package mockapi

import (
	"time"

	"github.com/tbourn/go-news-client/internal/domain"
)

// Demo accounts. Fixed passwords, dev use only.
const (
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "reader@example.com"
	SeedUserPassword  = "reader123"
)

// seed loads the demo fixtures: two accounts, two locales, a handful of tags
// and categories, and a few published articles with translations.
func (s *Store) seed() {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	admin := domain.User{
		ID: 1, CreatedAt: base, UpdatedAt: base,
		Username: "admin", Email: SeedAdminEmail,
		FirstName: "Ada", LastName: "Admin",
		Role: "admin", Status: "active",
	}
	reader := domain.User{
		ID: 2, CreatedAt: base, UpdatedAt: base,
		Username: "reader", Email: SeedUserEmail,
		FirstName: "Rae", LastName: "Reader",
		Role: "user", Status: "active",
	}
	s.accounts = []account{
		{user: admin, password: SeedAdminPassword},
		{user: reader, password: SeedUserPassword},
	}
	s.nextUserID = 2

	s.languages = []domain.Language{
		{ID: 1, Code: "en", Name: "English", NativeName: "English", IsActive: true, IsDefault: true, Direction: "ltr", SortOrder: 1},
		{ID: 2, Code: "fr", Name: "French", NativeName: "Français", IsActive: true, Direction: "ltr", SortOrder: 2},
	}

	s.tags = []domain.Tag{
		{ID: 1, CreatedAt: base, UpdatedAt: base, Translations: []domain.TagTranslation{
			{ID: 1, TagID: 1, LanguageCode: "en", Name: "Go", Slug: "go"},
			{ID: 2, TagID: 1, LanguageCode: "fr", Name: "Go", Slug: "go"},
		}},
		{ID: 2, CreatedAt: base, UpdatedAt: base, Translations: []domain.TagTranslation{
			{ID: 3, TagID: 2, LanguageCode: "en", Name: "Releases", Slug: "releases"},
			{ID: 4, TagID: 2, LanguageCode: "fr", Name: "Versions", Slug: "versions"},
		}},
	}
	s.nextTagID = 2

	s.categories = []domain.Category{
		{ID: 1, CreatedAt: base, UpdatedAt: base, Translations: []domain.CategoryTranslation{
			{ID: 5, CategoryID: 1, LanguageCode: "en", Name: "Technology", Slug: "technology", Description: "Software and tooling"},
			{ID: 6, CategoryID: 1, LanguageCode: "fr", Name: "Technologie", Slug: "technologie", Description: "Logiciels et outillage"},
		}},
		{ID: 2, CreatedAt: base, UpdatedAt: base, Translations: []domain.CategoryTranslation{
			{ID: 7, CategoryID: 2, LanguageCode: "en", Name: "Culture", Slug: "culture"},
		}},
	}
	s.nextCatID = 2

	pub1 := base.Add(24 * time.Hour)
	pub2 := base.Add(48 * time.Hour)
	s.articles = []domain.Article{
		{
			ID: 1, CreatedAt: pub1, UpdatedAt: pub1,
			UserID: admin.ID, User: admin,
			Status: "published", PublishedAt: &pub1, IsFeatured: true,
			Categories: []domain.Category{s.categories[0]},
			Tags:       []domain.Tag{s.tags[0]},
			Translations: []domain.ArticleTranslation{
				{ID: 8, ArticleID: 1, LanguageCode: "en", Title: "Hello, World", Slug: "hello-world",
					Excerpt: "The first post.", Content: "Welcome to the demo newsroom."},
				{ID: 9, ArticleID: 1, LanguageCode: "fr", Title: "Bonjour le monde", Slug: "bonjour-le-monde",
					Excerpt: "Le premier article.", Content: "Bienvenue dans la salle de rédaction de démonstration."},
			},
		},
		{
			ID: 2, CreatedAt: pub2, UpdatedAt: pub2,
			UserID: admin.ID, User: admin,
			Status: "published", PublishedAt: &pub2,
			Tags: []domain.Tag{s.tags[1]},
			Translations: []domain.ArticleTranslation{
				{ID: 10, ArticleID: 2, LanguageCode: "en", Title: "Release Notes", Slug: "release-notes",
					Excerpt: "What changed this week.", Content: "A rundown of the latest changes."},
			},
		},
		{
			ID: 3, CreatedAt: pub2, UpdatedAt: pub2,
			UserID: admin.ID, User: admin,
			Status: "draft",
			Translations: []domain.ArticleTranslation{
				{ID: 11, ArticleID: 3, LanguageCode: "en", Title: "Unpublished Draft", Slug: "unpublished-draft"},
			},
		},
	}
	s.nextArticleID = 3
	s.nextTransID = 11
}
