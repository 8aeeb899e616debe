package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/database"
	auditrepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	t      *testing.T
	db     *database.Database
	repo   *catalog.Repository
	audit  *audit.Service
	router *gin.Engine
}

func newTestApp(t *testing.T, opts ...func(*RouterConfig)) *testApp {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tmpl, err := views.Load("")
	require.NoError(t, err)

	repo := catalog.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	cfg := RouterConfig{
		Authors:   repo,
		Genres:    repo,
		Books:     repo,
		Instances: repo,
		Counter:   repo,
		Audit:     auditService,
		Database:  db,
		Version:   "test",
		Templates: tmpl,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testApp{t: t, db: db, repo: repo, audit: auditService, router: NewRouter(cfg)}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) author(first, family string) *entities.Author {
	a.t.Helper()
	author := &entities.Author{FirstName: first, FamilyName: family}
	require.NoError(a.t, a.repo.CreateAuthor(context.Background(), author))
	return author
}

func (a *testApp) genre(name string) *entities.Genre {
	a.t.Helper()
	genre := &entities.Genre{Name: name}
	require.NoError(a.t, a.repo.CreateGenre(context.Background(), genre))
	return genre
}

func (a *testApp) book(title string, author *entities.Author, genres ...*entities.Genre) *entities.Book {
	a.t.Helper()
	book := &entities.Book{Title: title, AuthorID: author.ID, Summary: "Summary of " + title, ISBN: "978-" + title}
	for _, g := range genres {
		book.Genres = append(book.Genres, entities.Genre{ID: g.ID})
	}
	require.NoError(a.t, a.repo.CreateBook(context.Background(), book))
	return book
}

func (a *testApp) instance(book *entities.Book, status entities.BookInstanceStatus) *entities.BookInstance {
	a.t.Helper()
	instance := &entities.BookInstance{BookID: book.ID, Imprint: "Penguin, 2003", Status: status}
	require.NoError(a.t, a.repo.CreateBookInstance(context.Background(), instance))
	return instance
}

func (a *testApp) auditEvents() []entities.AuditEvent {
	a.t.Helper()
	events, err := a.audit.Recent(context.Background(), 50)
	require.NoError(a.t, err)
	return events
}

var errStoreDown = errors.New("store unavailable")

// failingStore fails every call, standing in for an unreachable database.
type failingStore struct{}

func (failingStore) ListAuthors(context.Context) ([]entities.Author, error) { return nil, errStoreDown }
func (failingStore) GetAuthor(context.Context, uint) (*entities.Author, error) {
	return nil, errStoreDown
}
func (failingStore) CreateAuthor(context.Context, *entities.Author) error { return errStoreDown }
func (failingStore) DeleteAuthor(context.Context, uint) error             { return errStoreDown }
func (failingStore) ListGenres(context.Context) ([]entities.Genre, error) { return nil, errStoreDown }
func (failingStore) GetGenre(context.Context, uint) (*entities.Genre, error) {
	return nil, errStoreDown
}
func (failingStore) FindGenreByName(context.Context, string) (*entities.Genre, error) {
	return nil, errStoreDown
}
func (failingStore) CreateGenre(context.Context, *entities.Genre) error { return errStoreDown }
func (failingStore) DeleteGenre(context.Context, uint) error            { return errStoreDown }
func (failingStore) ListBooks(context.Context) ([]entities.Book, error) { return nil, errStoreDown }
func (failingStore) GetBook(context.Context, uint) (*entities.Book, error) {
	return nil, errStoreDown
}
func (failingStore) BooksByAuthor(context.Context, uint) ([]entities.Book, error) {
	return nil, errStoreDown
}
func (failingStore) BooksByGenre(context.Context, uint) ([]entities.Book, error) {
	return nil, errStoreDown
}
func (failingStore) CreateBook(context.Context, *entities.Book) error { return errStoreDown }
func (failingStore) UpdateBook(context.Context, *entities.Book) error { return errStoreDown }
func (failingStore) DeleteBook(context.Context, uint) error           { return errStoreDown }
func (failingStore) ListBookInstances(context.Context) ([]entities.BookInstance, error) {
	return nil, errStoreDown
}
func (failingStore) GetBookInstance(context.Context, uint) (*entities.BookInstance, error) {
	return nil, errStoreDown
}
func (failingStore) InstancesByBook(context.Context, uint) ([]entities.BookInstance, error) {
	return nil, errStoreDown
}
func (failingStore) CreateBookInstance(context.Context, *entities.BookInstance) error {
	return errStoreDown
}
func (failingStore) DeleteBookInstance(context.Context, uint) error { return errStoreDown }
func (failingStore) CountBooks(context.Context) (int64, error)      { return 0, errStoreDown }
func (failingStore) CountBookInstances(context.Context, entities.BookInstanceStatus) (int64, error) {
	return 0, errStoreDown
}
func (failingStore) CountAuthors(context.Context) (int64, error) { return 0, errStoreDown }
func (failingStore) CountGenres(context.Context) (int64, error)  { return 0, errStoreDown }

func withFailingStore(cfg *RouterConfig) {
	cfg.Authors = failingStore{}
	cfg.Genres = failingStore{}
	cfg.Books = failingStore{}
	cfg.Instances = failingStore{}
	cfg.Counter = failingStore{}
}

func newTestContext(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	c, engine := gin.CreateTestContext(w)
	tmpl, err := views.Load("")
	require.NoError(t, err)
	engine.SetHTMLTemplate(tmpl)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestParseIDParam(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newTestContext(t, w)
		c.Params = gin.Params{{Key: "id", Value: "123"}}

		id, ok := parseIDParam(c, "Book")

		assert.True(t, ok)
		assert.Equal(t, uint(123), id)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	for _, raw := range []string{"abc", "-1", "0", ""} {
		t.Run("invalid "+raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c := newTestContext(t, w)
			c.Params = gin.Params{{Key: "id", Value: raw}}

			id, ok := parseIDParam(c, "Book")

			assert.False(t, ok)
			assert.Equal(t, uint(0), id)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Book not found")
		})
	}
}

func TestParseFormID_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c := newTestContext(t, w)
	c.Request = httptest.NewRequest(http.MethodPost, "/authors/delete", strings.NewReader("authorid=x"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, ok := parseFormID(c, "authorid")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorid")
}

func TestRespondStoreError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondStoreError(newTestContext(t, w), catalog.ErrNotFound, "Author")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("other errors map to 500 without leaking details", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondStoreError(newTestContext(t, w), errStoreDown, "Author")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), errStoreDown.Error())
	})
}

func TestUpdatePlaceholders(t *testing.T) {
	app := newTestApp(t)
	author := app.author("Jane", "Austen")
	book := app.book("Emma", author)
	instance := app.instance(book, entities.BookInstanceAvailable)

	cases := []struct {
		path   string
		entity string
	}{
		{author.URL() + "/update", "Author"},
		{instance.URL() + "/update", "BookInstance"},
	}

	for _, tc := range cases {
		w := app.get(tc.path)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "NOT IMPLEMENTED: "+tc.entity+" update GET", w.Body.String())

		w = app.post(tc.path, url.Values{"first_name": {"Changed"}, "imprint": {"Changed"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "NOT IMPLEMENTED: "+tc.entity+" update POST", w.Body.String())
	}

	stored, err := app.repo.GetAuthor(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", stored.FirstName)
	storedInstance, err := app.repo.GetBookInstance(context.Background(), instance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Penguin, 2003", storedInstance.Imprint)
	assert.Empty(t, app.auditEvents())
}

func TestReadOnlyMode(t *testing.T) {
	app := newTestApp(t, func(cfg *RouterConfig) { cfg.ReadOnly = true })
	app.author("Jane", "Austen")

	w := app.get("/authors")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/authors/create")

	w = app.post("/authors/create", url.Values{"first_name": {"Ann"}, "family_name": {"Leckie"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	authors, err := app.repo.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestAuditEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/genres/create", url.Values{"name": {"Poetry"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = app.get("/audit")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entity_type":"genre"`)
	assert.Contains(t, w.Body.String(), "Created genre: Poetry")
	assert.Contains(t, w.Body.String(), `"limit":50`)
}

func TestIndexPage(t *testing.T) {
	t.Run("counts available copies by status", func(t *testing.T) {
		app := newTestApp(t)
		author := app.author("Jane", "Austen")
		app.genre("Romance")
		book := app.book("Emma", author)
		app.instance(book, entities.BookInstanceAvailable)
		app.instance(book, entities.BookInstanceAvailable)
		app.instance(book, entities.BookInstanceLoaned)

		w := app.get("/")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<strong>Books:</strong> 1")
		assert.Contains(t, body, "<strong>Copies:</strong> 3")
		assert.Contains(t, body, "<strong>Copies available:</strong> 2")
		assert.Contains(t, body, "<strong>Authors:</strong> 1")
		assert.Contains(t, body, "<strong>Genres:</strong> 1")
	})

	t.Run("store failure is shown on the page", func(t *testing.T) {
		app := newTestApp(t, withFailingStore)

		w := app.get("/catalog")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "could not load the catalog counts")
	})
}

func TestStoreFailuresRender500(t *testing.T) {
	app := newTestApp(t, withFailingStore)

	for _, path := range []string{
		"/authors", "/authors/1",
		"/genres", "/genres/1",
		"/books", "/books/1", "/books/create", "/books/1/update",
		"/bookinstances", "/bookinstances/1", "/bookinstances/create",
	} {
		w := app.get(path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}
}

func TestFlashAfterRedirect(t *testing.T) {
	flasher := &memoryFlasher{}
	app := newTestApp(t, func(cfg *RouterConfig) { cfg.Flasher = flasher })

	w := app.post("/authors/create", url.Values{"first_name": {"Ann"}, "family_name": {"Leckie"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = app.get(w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `<p class="flash">Author created</p>`)

	w = app.get("/authors")
	assert.NotContains(t, w.Body.String(), "Author created")
}

// memoryFlasher keeps a single pending message, enough for sequential tests.
type memoryFlasher struct {
	pending string
}

func (f *memoryFlasher) Flash(_ *gin.Context, message string) {
	f.pending = message
}

func (f *memoryFlasher) PopFlash(*gin.Context) string {
	msg := f.pending
	f.pending = ""
	return msg
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
