package http

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

var statusNames = lo.Map(entities.BookInstanceStatuses, func(s entities.BookInstanceStatus, _ int) string {
	return string(s)
})

const bookChoiceMessage = "Book must be chosen from the list"

var bookInstanceRules = validation.Rules{
	validation.Field("book").Trim().
		Required("Book must be specified").
		ID(bookChoiceMessage).
		Escape(),
	validation.Field("imprint").Trim().
		Required("Imprint must be specified").
		MaxLength(256, "Imprint must be at most 256 characters").
		Escape(),
	validation.Field("status").Trim().Optional().OneOf("Invalid status", statusNames...).Escape(),
	validation.Field("due_back").Trim().Optional().ISODate("Invalid date").ToDate(),
}

type BookInstancesController struct {
	store BookInstanceStore
	audit auditor
}

func NewBookInstancesController(store BookInstanceStore, rec AuditRecorder) *BookInstancesController {
	return &BookInstancesController{store: store, audit: auditor{rec: rec}}
}

// GET /bookinstances
func (bic *BookInstancesController) List(c *gin.Context) {
	instances, err := bic.store.ListBookInstances(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "book instance list")
		return
	}
	render(c, http.StatusOK, "bookinstance_list", "Book Instance List", gin.H{"Instances": instances})
}

// GET /bookinstances/:id
func (bic *BookInstancesController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "Book copy")
	if !ok {
		return
	}
	instance, err := bic.store.GetBookInstance(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Book copy")
		return
	}
	render(c, http.StatusOK, "bookinstance_detail", "Copy: "+html.UnescapeString(instance.Book.Title), gin.H{
		"Instance": instance,
	})
}

// GET /bookinstances/create
func (bic *BookInstancesController) CreateForm(c *gin.Context) {
	books, err := bic.store.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "book instance form")
		return
	}
	render(c, http.StatusOK, "bookinstance_form", "Create BookInstance", gin.H{
		"Instance": &entities.BookInstance{Status: entities.BookInstanceMaintenance},
		"Books":    books,
		"Statuses": entities.BookInstanceStatuses,
	})
}

// Create validates the submission and stores a new copy, or redisplays the
// form with the chosen book still selected.
// POST /bookinstances/create
func (bic *BookInstancesController) Create(c *gin.Context) {
	form, ok := postForm(c)
	if !ok {
		return
	}
	result := bookInstanceRules.Validate(form)
	if !result.Errors.Has("book") {
		_, err := bic.store.GetBook(c.Request.Context(), result.ID("book"))
		switch {
		case isNotFound(err):
			result.Fail("book", bookChoiceMessage)
		case err != nil:
			respondInternalError(c, err, "create book instance")
			return
		}
	}

	instance := &entities.BookInstance{
		BookID:  result.ID("book"),
		Imprint: result.Get("imprint"),
		Status:  entities.BookInstanceStatus(result.Get("status")),
		DueBack: result.Date("due_back"),
	}
	if instance.Status == "" {
		instance.Status = entities.BookInstanceMaintenance
	}

	if !result.Valid() {
		books, err := bic.store.ListBooks(c.Request.Context())
		if err != nil {
			respondInternalError(c, err, "book instance form")
			return
		}
		render(c, http.StatusOK, "bookinstance_form", "Create BookInstance", gin.H{
			"Instance": instance,
			"Books":    books,
			"Statuses": entities.BookInstanceStatuses,
			"Errors":   result.Errors,
		})
		return
	}

	if err := bic.store.CreateBookInstance(c.Request.Context(), instance); err != nil {
		respondInternalError(c, err, "create book instance")
		return
	}
	bic.audit.created(c, "bookinstance", instance.ID, instance.Imprint)
	flash(c, "Book copy created")
	c.Redirect(http.StatusFound, instance.URL())
}

// GET /bookinstances/:id/delete
func (bic *BookInstancesController) DeleteForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/bookinstances")
		return
	}
	instance, err := bic.store.GetBookInstance(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/bookinstances")
			return
		}
		respondInternalError(c, err, "delete book instance")
		return
	}
	render(c, http.StatusOK, "bookinstance_delete", "Delete BookInstance", gin.H{"Instance": instance})
}

// Delete re-loads the copy and removes it. Nothing references copies, so it
// is never blocked; an already missing copy redirects to the list.
// POST /bookinstances/delete
func (bic *BookInstancesController) Delete(c *gin.Context) {
	id, ok := parseFormID(c, "bookinstanceid")
	if !ok {
		return
	}
	instance, err := bic.store.GetBookInstance(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusFound, "/bookinstances")
			return
		}
		respondInternalError(c, err, "delete book instance")
		return
	}

	if err := bic.store.DeleteBookInstance(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete book instance")
		return
	}
	bic.audit.deleted(c, "bookinstance", id, instance.Book.Title+" ("+instance.Imprint+")")
	flash(c, "Book copy deleted")
	c.Redirect(http.StatusFound, "/bookinstances")
}
