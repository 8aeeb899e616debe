package http

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

const authorChoiceMessage = "Author must be chosen from the list."

var bookRules = validation.Rules{
	validation.Field("title").Trim().
		Required("Title must not be empty.").
		MaxLength(512, "Title must be at most 512 characters.").
		Escape(),
	validation.Field("author").Trim().
		Required("Author must not be empty.").
		ID(authorChoiceMessage).
		Escape(),
	validation.Field("summary").Trim().Required("Summary must not be empty.").Escape(),
	validation.Field("isbn").Trim().
		Required("ISBN must not be empty").
		MaxLength(32, "ISBN must be at most 32 characters").
		Escape(),
	validation.Each("genre").Trim().Escape(),
}

// GenreChoice is a genre checkbox on the book form.
type GenreChoice struct {
	entities.Genre
	Checked bool
}

// markChecked pairs every genre with whether it is among selected.
func markChecked(genres []entities.Genre, selected []uint) []GenreChoice {
	return lo.Map(genres, func(g entities.Genre, _ int) GenreChoice {
		return GenreChoice{Genre: g, Checked: lo.Contains(selected, g.ID)}
	})
}

type BooksController struct {
	store BookStore
	audit auditor
}

func NewBooksController(store BookStore, rec AuditRecorder) *BooksController {
	return &BooksController{store: store, audit: auditor{rec: rec}}
}

// List renders every book with its author, ordered by title.
// GET /books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.store.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "book list")
		return
	}
	render(c, http.StatusOK, "book_list", "Book List", gin.H{"Books": books})
}

func (bc *BooksController) loadWithInstances(c *gin.Context, id uint) (*entities.Book, []entities.BookInstance, error) {
	var (
		book      *entities.Book
		instances []entities.BookInstance
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		book, err = bc.store.GetBook(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		instances, err = bc.store.InstancesByBook(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

// formChoices loads the author and genre lists offered by the book form.
func (bc *BooksController) formChoices(c *gin.Context) ([]entities.Author, []entities.Genre, error) {
	var (
		authors []entities.Author
		genres  []entities.Genre
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		authors, err = bc.store.ListAuthors(ctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = bc.store.ListGenres(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// Detail renders a book with its author, genres and copies.
// GET /books/:id
func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}
	book, instances, err := bc.loadWithInstances(c, id)
	if err != nil {
		respondStoreError(c, err, "Book")
		return
	}
	render(c, http.StatusOK, "book_detail", html.UnescapeString(book.Title), gin.H{
		"Book":      book,
		"Instances": instances,
	})
}

// CreateForm renders a blank book form.
// GET /books/create
func (bc *BooksController) CreateForm(c *gin.Context) {
	authors, genres, err := bc.formChoices(c)
	if err != nil {
		respondInternalError(c, err, "book form")
		return
	}
	render(c, http.StatusOK, "book_form", "Create Book", gin.H{
		"Book":    &entities.Book{},
		"Authors": authors,
		"Genres":  markChecked(genres, nil),
	})
}

// Create validates the submission and stores a new book, or redisplays the
// form with the chosen genres still checked.
// POST /books/create
func (bc *BooksController) Create(c *gin.Context) {
	form, ok := postForm(c)
	if !ok {
		return
	}
	result := bookRules.Validate(form)
	if err := bc.checkAuthor(c, &result); err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	book := bookFromResult(result)

	if !result.Valid() {
		bc.redisplay(c, "Create Book", book, result.Errors)
		return
	}

	if err := bc.store.CreateBook(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	bc.audit.created(c, "book", book.ID, book.Title)
	flash(c, "Book created")
	c.Redirect(http.StatusFound, book.URL())
}

// UpdateForm renders the book form pre-filled with the stored book.
// GET /books/:id/update
func (bc *BooksController) UpdateForm(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}

	var (
		book    *entities.Book
		authors []entities.Author
		genres  []entities.Genre
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		book, err = bc.store.GetBook(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		authors, err = bc.store.ListAuthors(ctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = bc.store.ListGenres(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondStoreError(c, err, "Book")
		return
	}

	render(c, http.StatusOK, "book_form", "Update Book", gin.H{
		"Book":    book,
		"Authors": authors,
		"Genres":  markChecked(genres, book.GenreIDs()),
	})
}

// Update validates the submission and rewrites the book in place, keeping its ID.
// POST /books/:id/update
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Book")
	if !ok {
		return
	}
	form, ok := postForm(c)
	if !ok {
		return
	}
	result := bookRules.Validate(form)
	if err := bc.checkAuthor(c, &result); err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	book := bookFromResult(result)
	book.ID = id

	if !result.Valid() {
		bc.redisplay(c, "Update Book", book, result.Errors)
		return
	}

	if err := bc.store.UpdateBook(c.Request.Context(), book); err != nil {
		respondStoreError(c, err, "Book")
		return
	}
	bc.audit.updated(c, "book", book.ID, book.Title)
	flash(c, "Book updated")
	c.Redirect(http.StatusFound, book.URL())
}

// DeleteForm renders the delete confirmation, listing any copies that block it.
// A missing book redirects to the list.
// GET /books/:id/delete
func (bc *BooksController) DeleteForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/books")
		return
	}
	book, instances, err := bc.loadWithInstances(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/books")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}
	render(c, http.StatusOK, "book_delete", "Delete Book", gin.H{
		"Book":      book,
		"Instances": instances,
	})
}

// Delete re-checks the book's copies and removes the book when there are none.
// POST /books/delete
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseFormID(c, "bookid")
	if !ok {
		return
	}
	book, instances, err := bc.loadWithInstances(c, id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/books")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	if len(instances) > 0 {
		render(c, http.StatusOK, "book_delete", "Delete Book", gin.H{
			"Book":      book,
			"Instances": instances,
		})
		return
	}

	if err := bc.store.DeleteBook(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	bc.audit.deleted(c, "book", id, book.Title)
	flash(c, "Book deleted")
	c.Redirect(http.StatusFound, "/books")
}

// checkAuthor flags the author field when it names no stored author.
// Only store failures are returned.
func (bc *BooksController) checkAuthor(c *gin.Context, result *validation.Result) error {
	if result.Errors.Has("author") {
		return nil
	}
	_, err := bc.store.GetAuthor(c.Request.Context(), result.ID("author"))
	if isNotFound(err) {
		result.Fail("author", authorChoiceMessage)
		return nil
	}
	return err
}

func (bc *BooksController) redisplay(c *gin.Context, title string, book *entities.Book, errs validation.Errors) {
	authors, genres, err := bc.formChoices(c)
	if err != nil {
		respondInternalError(c, err, "book form")
		return
	}
	render(c, http.StatusOK, "book_form", title, gin.H{
		"Book":    book,
		"Authors": authors,
		"Genres":  markChecked(genres, book.GenreIDs()),
		"Errors":  errs,
	})
}

// bookFromResult builds a book from sanitized form values. Genres carry only
// their IDs; duplicates are dropped.
func bookFromResult(result validation.Result) *entities.Book {
	genres := lo.Map(lo.Uniq(result.IDs("genre")), func(id uint, _ int) entities.Genre {
		return entities.Genre{ID: id}
	})
	return &entities.Book{
		Title:    result.Get("title"),
		AuthorID: result.ID("author"),
		Summary:  result.Get("summary"),
		ISBN:     result.Get("isbn"),
		Genres:   genres,
	}
}
