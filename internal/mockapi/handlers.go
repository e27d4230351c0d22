package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-client/internal/domain"
	"github.com/tbourn/go-news-client/internal/services"
	"github.com/tbourn/go-news-client/internal/utils"
)

const userKey = "user"

// fail writes the standard error body: {"error": "..."}.
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// failFor maps a store error to its HTTP status.
func failFor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadCredentials), errors.Is(err, ErrInvalidToken):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTranslationEmpty):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// requireAuth resolves the bearer token to a user and stores it in the
// context. Missing or invalid tokens abort with 401.
func requireAuth(st *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			fail(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := st.UserByToken(token)
		if err != nil {
			failFor(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// requireEditor aborts with 403 unless the authenticated user can write
// content. Must run after requireAuth.
func requireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(userKey).(domain.User)
		if user.Role != "admin" && user.Role != "editor" {
			fail(c, http.StatusForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

type handler struct {
	store *Store
}

func (h handler) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.store.Authenticate(creds.Email, creds.Password)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h handler) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.store.Register(reg)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h handler) currentUser(c *gin.Context) {
	user := c.MustGet(userKey).(domain.User)
	c.JSON(http.StatusOK, domain.Envelope[domain.User]{Data: user})
}

func (h handler) listArticles(c *gin.Context) {
	q := ArticleQuery{
		Page:     utils.AtoiDefault(c.Query("page"), 1),
		PageSize: utils.AtoiDefault(c.Query("page_size"), defaultPageSize),
		Search:   c.Query("search"),
		Lang:     c.Query("lang"),
	}
	if v := utils.AtoiDefault(c.Query("category_id"), 0); v > 0 {
		q.CategoryID = uint(v)
	}
	if v := utils.AtoiDefault(c.Query("tag_id"), 0); v > 0 {
		q.TagID = uint(v)
	}
	c.JSON(http.StatusOK, h.store.ListArticles(q))
}

func (h handler) getArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	art, err := h.store.ArticleByID(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Article]{Data: art})
}

func (h handler) getArticleBySlug(c *gin.Context) {
	art, err := h.store.ArticleBySlug(c.Param("slug"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Article]{Data: art})
}

func (h handler) createArticle(c *gin.Context) {
	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	author := c.MustGet(userKey).(domain.User)
	art, err := h.store.CreateArticle(in, author)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.Envelope[domain.Article]{Data: art})
}

func (h handler) updateArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	art, err := h.store.UpdateArticle(id, in)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Article]{Data: art})
}

func (h handler) deleteArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	art, err := h.store.DeleteArticle(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Article]{Data: art})
}

func (h handler) listTags(c *gin.Context) {
	page := utils.AtoiDefault(c.Query("page"), 1)
	size := utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	c.JSON(http.StatusOK, h.store.ListTags(page, size))
}

func (h handler) getTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tag, err := h.store.TagByID(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Tag]{Data: tag})
}

func (h handler) createTag(c *gin.Context) {
	var in services.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tag, err := h.store.CreateTag(in, c.Query("lang"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.Envelope[domain.Tag]{Data: tag})
}

func (h handler) updateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tag, err := h.store.UpdateTag(id, in, c.Query("lang"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Tag]{Data: tag})
}

func (h handler) deleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tag, err := h.store.DeleteTag(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Tag]{Data: tag})
}

func (h handler) listCategories(c *gin.Context) {
	page := utils.AtoiDefault(c.Query("page"), 1)
	size := utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	c.JSON(http.StatusOK, h.store.ListCategories(page, size))
}

func (h handler) getCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cat, err := h.store.CategoryByID(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Category]{Data: cat})
}

func (h handler) createCategory(c *gin.Context) {
	var in services.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	cat, err := h.store.CreateCategory(in, c.Query("lang"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.Envelope[domain.Category]{Data: cat})
}

func (h handler) updateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	cat, err := h.store.UpdateCategory(id, in, c.Query("lang"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Category]{Data: cat})
}

func (h handler) deleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cat, err := h.store.DeleteCategory(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Category]{Data: cat})
}

func (h handler) listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Languages())
}

func (h handler) getLanguage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lang, err := h.store.LanguageByID(id)
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Language]{Data: lang})
}

func (h handler) getLanguageByCode(c *gin.Context) {
	lang, err := h.store.LanguageByCode(c.Param("code"))
	if err != nil {
		failFor(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.Envelope[domain.Language]{Data: lang})
}

// idParam parses the :id path segment, aborting with 400 on garbage.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
