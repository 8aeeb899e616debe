package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog stores
	Authors   AuthorStore
	Genres    GenreStore
	Books     BookStore
	Instances BookInstanceStore
	Counter   CatalogCounter

	// Optional collaborators; nil disables the feature.
	Audit    AuditRecorder
	Flasher  Flasher
	Sessions gin.HandlerFunc // loads and saves the session around each request

	Database *database.Database
	Version  string

	// UI
	Templates  *template.Template
	StaticPath string

	// Security
	CSRFSecret    []byte
	SecureCookies bool
	ReadOnly      bool
}
