package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter builds the mock API engine with the full middleware chain and
// every route the client knows about, mounted under /api/v1.
//
// Middleware order:
//  1. OpenTelemetry tracing
//  2. Request ID
//  3. Access log
//  4. Recovery
//  5. Metrics
//  6. Gzip and CORS
func NewRouter(st *Store, lg zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware("newsclient-mockapi"))
	r.Use(requestID())
	r.Use(accessLog(lg))
	r.Use(recovery(lg))
	r.Use(httpMetrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) { fail(c, http.StatusNotFound, "route not found") })
	r.NoMethod(func(c *gin.Context) { fail(c, http.StatusMethodNotAllowed, "method not allowed") })

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handler{store: st}
	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", h.login)
		api.POST("/auth/register", h.register)
		api.GET("/user", requireAuth(st), h.currentUser)

		api.GET("/articles", h.listArticles)
		api.GET("/articles/:id", h.getArticle)
		api.GET("/articles/slug/:slug", h.getArticleBySlug)

		api.GET("/tags", h.listTags)
		api.GET("/tags/:id", h.getTag)
		api.GET("/categories", h.listCategories)
		api.GET("/categories/:id", h.getCategory)

		api.GET("/languages", h.listLanguages)
		api.GET("/languages/:id", h.getLanguage)
		api.GET("/languages/code/:code", h.getLanguageByCode)

		admin := api.Group("/admin", requireAuth(st), requireEditor())
		{
			admin.POST("/articles", h.createArticle)
			admin.PUT("/articles/:id", h.updateArticle)
			admin.DELETE("/articles/:id", h.deleteArticle)

			admin.POST("/tags", h.createTag)
			admin.PUT("/tags/:id", h.updateTag)
			admin.DELETE("/tags/:id", h.deleteTag)

			admin.POST("/categories", h.createCategory)
			admin.PUT("/categories/:id", h.updateCategory)
			admin.DELETE("/categories/:id", h.deleteCategory)
		}
	}

	return r
}
