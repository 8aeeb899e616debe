package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("reports database and catalog counts", func(t *testing.T) {
		db := setupHealthTestDB(t)
		repo := catalog.NewRepository(db.DB)
		ctx := context.Background()

		author := &entities.Author{FirstName: "Jane", FamilyName: "Austen"}
		require.NoError(t, repo.CreateAuthor(ctx, author))
		book := &entities.Book{Title: "Emma", AuthorID: author.ID, Summary: "S", ISBN: "1"}
		require.NoError(t, repo.CreateBook(ctx, book))
		for _, status := range []entities.BookInstanceStatus{entities.BookInstanceAvailable, entities.BookInstanceLoaned} {
			require.NoError(t, repo.CreateBookInstance(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "P", Status: status}))
		}

		code, response := getHealth(t, NewHealthController(db, repo, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok (sqlite)", response.Database)
		assert.Contains(t, response.Time, "T")
		require.NotNil(t, response.Catalog)
		assert.Equal(t, CatalogCounts{Books: 1, Copies: 2, AvailableCopies: 1, Authors: 1}, *response.Catalog)
	})

	t.Run("nothing configured", func(t *testing.T) {
		code, response := getHealth(t, NewHealthController(nil, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Database)
		assert.Nil(t, response.Catalog)
	})

	t.Run("failing counts degrade the report", func(t *testing.T) {
		code, response := getHealth(t, NewHealthController(setupHealthTestDB(t), failingStore{}, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", response.Status)
		assert.Nil(t, response.Catalog)
	})

	t.Run("closed database is unhealthy", func(t *testing.T) {
		db := setupHealthTestDB(t)
		require.NoError(t, db.Close())

		code, response := getHealth(t, NewHealthController(db, catalog.NewRepository(db.DB), "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Database, "error")
		assert.Nil(t, response.Catalog)
	})
}

func TestHealthController_Ping(t *testing.T) {
	router := gin.New()
	router.GET("/ping", NewHealthController(nil, nil, "").Ping)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
