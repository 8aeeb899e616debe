package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/readonly"
	"github.com/mrlokans/locallibrary/internal/security"
)

// NewRouter creates the catalog router from cfg.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(security.HeadersMiddleware())

	// CSRF must run before the session so the session context stays on the
	// request CSRF replaces.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions)
	}
	if cfg.Flasher != nil {
		router.Use(flashMiddleware(cfg.Flasher))
	}
	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())

	if cfg.Templates != nil {
		router.SetHTMLTemplate(cfg.Templates)
	}
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	var pinger DatabasePinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.Counter, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	index := NewIndexController(cfg.Counter)
	router.GET("/", index.Home)
	router.GET("/catalog", index.Home)

	authors := NewAuthorsController(cfg.Authors, cfg.Audit)
	router.GET("/authors", authors.List)
	router.GET("/authors/create", authors.CreateForm)
	router.POST("/authors/create", authors.Create)
	router.POST("/authors/delete", authors.Delete)
	router.GET("/authors/:id", authors.Detail)
	router.GET("/authors/:id/delete", authors.DeleteForm)
	router.GET("/authors/:id/update", respondNotImplemented("Author"))
	router.POST("/authors/:id/update", respondNotImplemented("Author"))

	genres := NewGenresController(cfg.Genres, cfg.Audit)
	router.GET("/genres", genres.List)
	router.GET("/genres/create", genres.CreateForm)
	router.POST("/genres/create", genres.Create)
	router.POST("/genres/delete", genres.Delete)
	router.GET("/genres/:id", genres.Detail)
	router.GET("/genres/:id/delete", genres.DeleteForm)
	router.GET("/genres/:id/update", respondNotImplemented("Genre"))
	router.POST("/genres/:id/update", respondNotImplemented("Genre"))

	books := NewBooksController(cfg.Books, cfg.Audit)
	router.GET("/books", books.List)
	router.GET("/books/create", books.CreateForm)
	router.POST("/books/create", books.Create)
	router.POST("/books/delete", books.Delete)
	router.GET("/books/:id", books.Detail)
	router.GET("/books/:id/delete", books.DeleteForm)
	router.GET("/books/:id/update", books.UpdateForm)
	router.POST("/books/:id/update", books.Update)

	instances := NewBookInstancesController(cfg.Instances, cfg.Audit)
	router.GET("/bookinstances", instances.List)
	router.GET("/bookinstances/create", instances.CreateForm)
	router.POST("/bookinstances/create", instances.Create)
	router.POST("/bookinstances/delete", instances.Delete)
	router.GET("/bookinstances/:id", instances.Detail)
	router.GET("/bookinstances/:id/delete", instances.DeleteForm)
	router.GET("/bookinstances/:id/update", respondNotImplemented("BookInstance"))
	router.POST("/bookinstances/:id/update", respondNotImplemented("BookInstance"))

	if cfg.Audit != nil {
		router.GET("/audit", NewAuditController(cfg.Audit).GetAuditEvents)
	}

	return router
}
