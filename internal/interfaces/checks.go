package interfaces

// Compile-time interface implementation checks. A missing method on a
// concrete type fails the build here instead of at wiring time.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/catalog"
	"github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/seed"
	"github.com/mrlokans/locallibrary/internal/sessions"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.AuthorStore = (*catalog.Repository)(nil)
var _ http.GenreStore = (*catalog.Repository)(nil)
var _ http.BookStore = (*catalog.Repository)(nil)
var _ http.BookInstanceStore = (*catalog.Repository)(nil)
var _ http.CatalogCounter = (*catalog.Repository)(nil)
var _ seed.Store = (*catalog.Repository)(nil)
var _ http.DatabasePinger = (*database.Database)(nil)

// =============================================================================
// Cross-cutting
// =============================================================================

var _ http.AuditRecorder = (*audit.Service)(nil)
var _ http.Flasher = (*sessions.Manager)(nil)
