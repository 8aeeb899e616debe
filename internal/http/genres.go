package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

var genreRules = validation.Rules{
	validation.Field("name").Trim().
		Required("Genre name required").
		Length(3, 100, "Genre name must be between 3 and 100 characters").
		Escape(),
}

type GenresController struct {
	store GenreStore
	audit auditor
}

func NewGenresController(store GenreStore, rec AuditRecorder) *GenresController {
	return &GenresController{store: store, audit: auditor{rec: rec}}
}

// GET /genres
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.store.ListGenres(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "genre list")
		return
	}
	render(c, http.StatusOK, "genre_list", "Genre List", gin.H{"Genres": genres})
}

func (gc *GenresController) loadWithBooks(c *gin.Context, id uint) (*entities.Genre, []entities.Book, error) {
	var (
		genre *entities.Genre
		books []entities.Book
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		genre, err = gc.store.GetGenre(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		books, err = gc.store.BooksByGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

// GET /genres/:id
func (gc *GenresController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Genre")
	if !ok {
		return
	}
	genre, books, err := gc.loadWithBooks(c, id)
	if err != nil {
		respondStoreError(c, err, "Genre")
		return
	}
	render(c, http.StatusOK, "genre_detail", "Genre Detail", gin.H{
		"Genre": genre,
		"Books": books,
	})
}

// GET /genres/create
func (gc *GenresController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "genre_form", "Create Genre", gin.H{"Genre": &entities.Genre{}})
}

// Create stores a new genre. Submitting a name that already exists redirects
// to the existing genre instead of creating a duplicate.
// POST /genres/create
func (gc *GenresController) Create(c *gin.Context) {
	form, ok := postForm(c)
	if !ok {
		return
	}
	result := genreRules.Validate(form)
	genre := &entities.Genre{Name: result.Get("name")}

	if !result.Valid() {
		render(c, http.StatusOK, "genre_form", "Create Genre", gin.H{
			"Genre":  genre,
			"Errors": result.Errors,
		})
		return
	}

	ctx := c.Request.Context()
	existing, err := gc.store.FindGenreByName(ctx, genre.Name)
	if err != nil {
		respondInternalError(c, err, "create genre")
		return
	}
	if existing != nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}

	if err := gc.store.CreateGenre(ctx, genre); err != nil {
		respondInternalError(c, err, "create genre")
		return
	}
	gc.audit.created(c, "genre", genre.ID, genre.Name)
	flash(c, "Genre created")
	c.Redirect(http.StatusFound, genre.URL())
}

// GET /genres/:id/delete
func (gc *GenresController) DeleteForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/genres")
		return
	}
	genre, books, err := gc.loadWithBooks(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/genres")
			return
		}
		respondInternalError(c, err, "delete genre")
		return
	}
	render(c, http.StatusOK, "genre_delete", "Delete Genre", gin.H{
		"Genre": genre,
		"Books": books,
	})
}

// Delete removes the genre unless books still reference it.
// POST /genres/delete
func (gc *GenresController) Delete(c *gin.Context) {
	id, ok := parseFormID(c, "genreid")
	if !ok {
		return
	}
	genre, books, err := gc.loadWithBooks(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/genres")
			return
		}
		respondInternalError(c, err, "delete genre")
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "genre_delete", "Delete Genre", gin.H{
			"Genre": genre,
			"Books": books,
		})
		return
	}

	if err := gc.store.DeleteGenre(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete genre")
		return
	}
	gc.audit.deleted(c, "genre", id, genre.Name)
	flash(c, "Genre deleted")
	c.Redirect(http.StatusFound, "/genres")
}
