package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-news-client/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestRouter() *gin.Engine {
	return NewRouter(NewStore("test-secret"), zerolog.Nop())
}

// do performs one request against the router. A non-empty token is sent as a
// bearer credential; a non-empty body is sent as JSON.
func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]string](t, w)
	return body["error"]
}

// loginAs returns a live token for one of the seeded accounts.
func loginAs(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", w.Code, w.Body.String())
	}
	res := decode[domain.LoginResult](t, w)
	if res.Token == "" {
		t.Fatalf("empty token in %s", w.Body.String())
	}
	return res.Token
}

func TestLogin(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+SeedAdminEmail+`","password":"`+SeedAdminPassword+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	res := decode[domain.LoginResult](t, w)
	if res.User.Username != "admin" || res.User.Role != "admin" {
		t.Fatalf("user = %+v", res.User)
	}

	w = do(r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+SeedAdminEmail+`","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if errorBody(t, w) == "" {
		t.Fatalf("missing error body: %s", w.Body.String())
	}
}

func TestRegister(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"new","email":"new@example.com","password":"pw123456"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	body := decode[map[string]domain.User](t, w)
	if body["user"].Username != "new" {
		t.Fatalf("body = %s", w.Body.String())
	}

	// Seeded email is taken.
	w = do(r, http.MethodPost, "/api/v1/auth/register", "",
		`{"username":"other","email":"`+SeedAdminEmail+`","password":"pw123456"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCurrentUser(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/api/v1/user", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/v1/user", "garbage-token", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status with bad token = %d", w.Code)
	}

	token := loginAs(t, r, SeedUserEmail, SeedUserPassword)
	w = do(r, http.MethodGet, "/api/v1/user", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	env := decode[domain.Envelope[domain.User]](t, w)
	if env.Data.Username != "reader" {
		t.Fatalf("user = %+v", env.Data)
	}
}

func TestListArticles_Filters(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name    string
		query   string
		wantIDs []uint
	}{
		{"drafts excluded", "", []uint{2, 1}},
		{"french translation required", "?lang=fr", []uint{1}},
		{"by tag", "?tag_id=2", []uint{2}},
		{"by category", "?category_id=1", []uint{1}},
		{"search title", "?search=release", []uint{2}},
		{"search misses drafts", "?search=unpublished", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/v1/articles"+tt.query, "", "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			page := decode[domain.Page[domain.Article]](t, w)
			var ids []uint
			for _, a := range page.Data {
				ids = append(ids, a.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
				}
			}
			if page.Total != int64(len(tt.wantIDs)) {
				t.Fatalf("total = %d, want %d", page.Total, len(tt.wantIDs))
			}
		})
	}
}

func TestListArticles_Pagination(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/api/v1/articles?page=1&page_size=1", "", "")
	page := decode[domain.Page[domain.Article]](t, w)
	if len(page.Data) != 1 || page.Total != 2 || page.TotalPages != 2 {
		t.Fatalf("page = %+v", page)
	}

	w = do(r, http.MethodGet, "/api/v1/articles?page=99&page_size=1", "", "")
	page = decode[domain.Page[domain.Article]](t, w)
	if len(page.Data) != 0 {
		t.Fatalf("out-of-range page returned data: %+v", page.Data)
	}
}

func TestGetArticle(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/api/v1/articles/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode[domain.Envelope[domain.Article]](t, w)
	if env.Data.ID != 1 || !env.Data.IsFeatured {
		t.Fatalf("article = %+v", env.Data)
	}

	w = do(r, http.MethodGet, "/api/v1/articles/999", "", "")
	if w.Code != http.StatusNotFound || errorBody(t, w) == "" {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/v1/articles/slug/hello-world", "", "")
	env = decode[domain.Envelope[domain.Article]](t, w)
	if env.Data.ID != 1 {
		t.Fatalf("slug lookup = %+v", env.Data)
	}

	// French slugs resolve too.
	w = do(r, http.MethodGet, "/api/v1/articles/slug/bonjour-le-monde", "", "")
	env = decode[domain.Envelope[domain.Article]](t, w)
	if env.Data.ID != 1 {
		t.Fatalf("localized slug lookup = %+v", env.Data)
	}
}

func TestAdminRoutes_RequireRole(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/api/v1/admin/articles", "", `{"title":"x"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", w.Code)
	}

	reader := loginAs(t, r, SeedUserEmail, SeedUserPassword)
	w = do(r, http.MethodPost, "/api/v1/admin/articles", reader, `{"title":"x"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("reader status = %d", w.Code)
	}
	if errorBody(t, w) != "insufficient role" {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAdminArticles_CRUDCycle(t *testing.T) {
	r := newTestRouter()
	token := loginAs(t, r, SeedAdminEmail, SeedAdminPassword)

	w := do(r, http.MethodPost, "/api/v1/admin/articles", token,
		`{"status":"published","translations":[{"language_code":"en","title":"Breaking News","content":"body"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	created := decode[domain.Envelope[domain.Article]](t, w).Data
	if created.ID == 0 || created.PublishedAt == nil {
		t.Fatalf("created = %+v", created)
	}
	if created.Translations[0].Slug != "breaking-news" {
		t.Fatalf("slug = %q", created.Translations[0].Slug)
	}

	// A create with no translations is rejected.
	w = do(r, http.MethodPost, "/api/v1/admin/articles", token, `{"status":"draft"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("translationless create status = %d", w.Code)
	}

	// The published article is immediately listable.
	w = do(r, http.MethodGet, "/api/v1/articles?search=breaking", "", "")
	page := decode[domain.Page[domain.Article]](t, w)
	if page.Total != 1 {
		t.Fatalf("created article not listed: %+v", page)
	}

	idPath := "/api/v1/admin/articles/" + itoa(created.ID)
	w = do(r, http.MethodPut, idPath, token,
		`{"translations":[{"language_code":"en","title":"Updated Headline","content":"body"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d body = %s", w.Code, w.Body.String())
	}
	updated := decode[domain.Envelope[domain.Article]](t, w).Data
	if updated.Translations[0].Title != "Updated Headline" {
		t.Fatalf("updated = %+v", updated.Translations)
	}

	// Delete echoes the removed article in the standard envelope.
	w = do(r, http.MethodDelete, idPath, token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", w.Code, w.Body.String())
	}
	deleted := decode[domain.Envelope[domain.Article]](t, w).Data
	if deleted.ID != created.ID {
		t.Fatalf("deleted = %+v, want id %d", deleted, created.ID)
	}
	w = do(r, http.MethodGet, "/api/v1/articles/"+itoa(created.ID), "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("deleted article still served: %d", w.Code)
	}
}

func TestTagsAndCategories(t *testing.T) {
	r := newTestRouter()
	token := loginAs(t, r, SeedAdminEmail, SeedAdminPassword)

	w := do(r, http.MethodGet, "/api/v1/tags", "", "")
	tags := decode[domain.Page[domain.Tag]](t, w)
	if tags.Total != 2 {
		t.Fatalf("tags = %+v", tags)
	}

	w = do(r, http.MethodPost, "/api/v1/admin/tags?lang=fr", token, `{"name":"Outils"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create tag status = %d body = %s", w.Code, w.Body.String())
	}
	tag := decode[domain.Envelope[domain.Tag]](t, w).Data
	if len(tag.Translations) != 1 || tag.Translations[0].LanguageCode != "fr" {
		t.Fatalf("tag = %+v", tag)
	}

	w = do(r, http.MethodGet, "/api/v1/categories", "", "")
	cats := decode[domain.Page[domain.Category]](t, w)
	if cats.Total != 2 {
		t.Fatalf("categories = %+v", cats)
	}

	w = do(r, http.MethodDelete, "/api/v1/admin/tags/"+itoa(tag.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete tag status = %d", w.Code)
	}
	if got := decode[domain.Envelope[domain.Tag]](t, w).Data; got.ID != tag.ID {
		t.Fatalf("deleted tag = %+v, want id %d", got, tag.ID)
	}
}

func TestLanguages(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/api/v1/languages", "", "")
	page := decode[domain.Page[domain.Language]](t, w)
	if page.Total != 2 || page.Data[0].Code != "en" {
		t.Fatalf("languages = %+v", page)
	}

	w = do(r, http.MethodGet, "/api/v1/languages/code/fr", "", "")
	env := decode[domain.Envelope[domain.Language]](t, w)
	if env.Data.Name != "French" {
		t.Fatalf("language = %+v", env.Data)
	}

	w = do(r, http.MethodGet, "/api/v1/languages/code/xx", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRouterFallbacks(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodGet, "/nope", "", "")
	if w.Code != http.StatusNotFound || errorBody(t, w) != "route not found" {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPatch, "/api/v1/articles", "", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
