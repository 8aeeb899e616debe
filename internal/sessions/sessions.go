// Package sessions keeps one-shot flash messages in a database-backed session.
package sessions

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3" // driver behind sqlite3store
)

const flashKey = "flash"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

const postgresSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BYTEA NOT NULL,
	expiry TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);`

// Manager wraps scs.SessionManager with flash helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates the sessions table for dialect ("sqlite" or "postgres")
// and returns a manager storing sessions in it.
func NewManager(sqlDB *sql.DB, dialect string, lifetime time.Duration, secureCookies bool) (*Manager, error) {
	sm := scs.New()

	switch dialect {
	case "postgres":
		if _, err := sqlDB.Exec(postgresSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = postgresstore.New(sqlDB)
	case "sqlite":
		if _, err := sqlDB.Exec(sqliteSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = sqlite3store.New(sqlDB)
	default:
		return nil, fmt.Errorf("sessions: unsupported dialect %q", dialect)
	}

	if lifetime > 0 {
		sm.Lifetime = lifetime
	}
	sm.Cookie.Name = "library_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// Flash stores a message shown on the next rendered page.
func (m *Manager) Flash(c *gin.Context, message string) {
	m.Put(c.Request.Context(), flashKey, message)
}

// PopFlash returns the pending message and removes it from the session.
func (m *Manager) PopFlash(c *gin.Context) string {
	return m.PopString(c.Request.Context(), flashKey)
}
