package sessions

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupManager(t *testing.T) *Manager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := NewManager(sqlDB, "sqlite", time.Hour, false)
	require.NoError(t, err)
	return m
}

func setupRouter(m *Manager) *gin.Engine {
	router := gin.New()
	router.Use(m.LoadSave())
	router.POST("/authors/create", func(c *gin.Context) {
		m.Flash(c, "Author created")
		c.Redirect(http.StatusFound, "/authors/1")
	})
	router.GET("/authors/1", func(c *gin.Context) {
		c.String(http.StatusOK, "flash=%s", m.PopFlash(c))
	})
	return router
}

func TestFlash_ShownOnceAfterRedirect(t *testing.T) {
	m := setupManager(t)
	router := setupRouter(m)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/authors/create", nil))
	require.Equal(t, http.StatusFound, rr.Code)

	var cookie *http.Cookie
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "library_session" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "session cookie must be set on redirect")

	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/authors/1", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		return rr.Body.String()
	}

	assert.Equal(t, "flash=Author created", get())
	assert.Equal(t, "flash=", get())
}

func TestFlash_NoSessionWithoutWrites(t *testing.T) {
	m := setupManager(t)
	router := setupRouter(m)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/authors/1", nil))

	assert.Equal(t, "flash=", rr.Body.String())
	assert.Empty(t, rr.Result().Cookies())
}

func TestNewManager_UnsupportedDialect(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "x.db")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = NewManager(sqlDB, "mysql", time.Hour, false)
	assert.Error(t, err)
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "library_session" {
			return ck
		}
	}
	return nil
}

func TestLoadSave_SavesWhenHandlerWritesNothing(t *testing.T) {
	m := setupManager(t)
	router := gin.New()
	router.Use(m.LoadSave())
	router.POST("/silent", func(c *gin.Context) {
		m.Flash(c, "saved")
		c.Status(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/silent", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, sessionCookie(rr))
}

func TestLoadSave_DestroyedSessionExpiresCookie(t *testing.T) {
	m := setupManager(t)
	router := setupRouter(m)
	router.POST("/logout", func(c *gin.Context) {
		require.NoError(t, m.Destroy(c.Request.Context()))
		c.String(http.StatusOK, "bye")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/authors/create", nil))
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}
