package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

var authorRules = validation.Rules{
	validation.Field("first_name").Trim().
		Required("First name must be specified.").
		MaxLength(100, "First name must be at most 100 characters.").
		Alphanumeric("First name has non-alphanumeric characters.").
		Escape(),
	validation.Field("family_name").Trim().
		Required("Family name must be specified.").
		MaxLength(100, "Family name must be at most 100 characters.").
		Alphanumeric("Family name has non-alphanumeric characters.").
		Escape(),
	validation.Field("date_of_birth").Trim().Optional().ISODate("Invalid date of birth").ToDate(),
	validation.Field("date_of_death").Trim().Optional().ISODate("Invalid date of death").ToDate(),
}

type AuthorsController struct {
	store AuthorStore
	audit auditor
}

func NewAuthorsController(store AuthorStore, rec AuditRecorder) *AuthorsController {
	return &AuthorsController{store: store, audit: auditor{rec: rec}}
}

// List renders every author ordered by family name.
// GET /authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.store.ListAuthors(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "author list")
		return
	}
	render(c, http.StatusOK, "author_list", "Author List", gin.H{"Authors": authors})
}

// loadWithBooks fetches the author and the books referencing it in parallel.
func (ac *AuthorsController) loadWithBooks(c *gin.Context, id uint) (*entities.Author, []entities.Book, error) {
	var (
		author *entities.Author
		books  []entities.Book
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		author, err = ac.store.GetAuthor(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		books, err = ac.store.BooksByAuthor(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

// Detail renders an author and their books.
// GET /authors/:id
func (ac *AuthorsController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Author")
	if !ok {
		return
	}
	author, books, err := ac.loadWithBooks(c, id)
	if err != nil {
		respondStoreError(c, err, "Author")
		return
	}
	render(c, http.StatusOK, "author_detail", "Author Detail", gin.H{
		"Author": author,
		"Books":  books,
	})
}

// CreateForm renders a blank author form.
// GET /authors/create
func (ac *AuthorsController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "author_form", "Create Author", gin.H{"Author": &entities.Author{}})
}

// Create validates the submission and stores a new author, or redisplays the form.
// POST /authors/create
func (ac *AuthorsController) Create(c *gin.Context) {
	form, ok := postForm(c)
	if !ok {
		return
	}
	result := authorRules.Validate(form)

	author := &entities.Author{
		FirstName:   result.Get("first_name"),
		FamilyName:  result.Get("family_name"),
		DateOfBirth: result.Date("date_of_birth"),
		DateOfDeath: result.Date("date_of_death"),
	}

	if !result.Valid() {
		render(c, http.StatusOK, "author_form", "Create Author", gin.H{
			"Author": author,
			"Errors": result.Errors,
		})
		return
	}

	if err := ac.store.CreateAuthor(c.Request.Context(), author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}
	ac.audit.created(c, "author", author.ID, author.Name())
	flash(c, "Author created")
	c.Redirect(http.StatusFound, author.URL())
}

// DeleteForm renders the delete confirmation, listing any books that block it.
// A missing author redirects to the list.
// GET /authors/:id/delete
func (ac *AuthorsController) DeleteForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/authors")
		return
	}
	ac.renderDelete(c, id)
}

// Delete re-checks the author's books and removes the author when there are none.
// POST /authors/delete
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseFormID(c, "authorid")
	if !ok {
		return
	}

	author, books, err := ac.loadWithBooks(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/authors")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}

	if len(books) > 0 {
		render(c, http.StatusOK, "author_delete", "Delete Author", gin.H{
			"Author": author,
			"Books":  books,
		})
		return
	}

	if err := ac.store.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}
	ac.audit.deleted(c, "author", id, author.Name())
	flash(c, "Author deleted")
	c.Redirect(http.StatusFound, "/authors")
}

func (ac *AuthorsController) renderDelete(c *gin.Context, id uint) {
	author, books, err := ac.loadWithBooks(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/authors")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}
	render(c, http.StatusOK, "author_delete", "Delete Author", gin.H{
		"Author": author,
		"Books":  books,
	})
}
