package http

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/database/catalog"
	"github.com/mrlokans/locallibrary/internal/readonly"
	"github.com/mrlokans/locallibrary/internal/security"
)

const flasherKey = "flasher"

// --- Rendering ---

// render executes a page template, adding the values every page layout expects.
func render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flash"] = popFlash(c)
	data["CSRFField"] = csrfField(c)
	data["ReadOnly"] = readonly.Enabled(c)
	c.HTML(status, name, data)
}

func csrfField(c *gin.Context) template.HTML {
	if c.Request == nil {
		return ""
	}
	return security.CSRFField(c)
}

// --- Flash messages ---

func flashMiddleware(f Flasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(flasherKey, f)
		c.Next()
	}
}

func flasherFrom(c *gin.Context) Flasher {
	v, ok := c.Get(flasherKey)
	if !ok {
		return nil
	}
	f, _ := v.(Flasher)
	return f
}

func flash(c *gin.Context, message string) {
	if f := flasherFrom(c); f != nil {
		f.Flash(c, message)
	}
}

func popFlash(c *gin.Context) string {
	if f := flasherFrom(c); f != nil {
		return f.PopFlash(c)
	}
	return ""
}

// --- Error Response Helpers ---

// respondBadRequest renders the error page with a 400 status.
func respondBadRequest(c *gin.Context, message string) {
	render(c, http.StatusBadRequest, "error", "Bad request", gin.H{"Message": message})
}

// respondNotFound renders the error page with a 404 status.
func respondNotFound(c *gin.Context, resource string) {
	render(c, http.StatusNotFound, "error", "Not found", gin.H{"Message": resource + " not found"})
}

// respondInternalError logs the error and renders a generic 500 page.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	render(c, http.StatusInternalServerError, "error", "Error", gin.H{"Message": "Something went wrong while loading this page."})
}

// respondStoreError maps a store error to 404 when the record is missing and 500 otherwise.
func respondStoreError(c *gin.Context, err error, resource string) {
	if isNotFound(err) {
		respondNotFound(c, resource)
		return
	}
	respondInternalError(c, err, resource)
}

func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}

// respondNotImplemented answers a declared but unbuilt endpoint without touching any state.
func respondNotImplemented(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "NOT IMPLEMENTED: %s update %s", entity, c.Request.Method)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts an ID from the URL path. An unparsable ID cannot name
// any record, so it responds 404 and returns 0, false.
func parseIDParam(c *gin.Context, resource string) (uint, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondNotFound(c, resource)
		return 0, false
	}
	return id, true
}

// parseFormID extracts the hidden ID field of a delete form.
// Responds with a 400 error and returns 0, false when it is missing or malformed.
func parseFormID(c *gin.Context, field string) (uint, bool) {
	id, err := parseID(c.PostForm(field))
	if err != nil {
		respondBadRequest(c, "invalid "+field)
		return 0, false
	}
	return id, true
}

// postForm parses the submitted form body.
func postForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		respondBadRequest(c, "invalid form submission")
		return nil, false
	}
	return c.Request.PostForm, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}

// --- Audit ---

// auditor tolerates a nil recorder so controllers can run without an audit trail.
type auditor struct {
	rec AuditRecorder
}

func (r auditor) created(c *gin.Context, entityType string, id uint, description string) {
	if r.rec != nil {
		r.rec.LogCreate(c.Request.Context(), entityType, id, description, c.ClientIP())
	}
}

func (r auditor) updated(c *gin.Context, entityType string, id uint, description string) {
	if r.rec != nil {
		r.rec.LogUpdate(c.Request.Context(), entityType, id, description, c.ClientIP())
	}
}

func (r auditor) deleted(c *gin.Context, entityType string, id uint, description string) {
	if r.rec != nil {
		r.rec.LogDelete(c.Request.Context(), entityType, id, description, c.ClientIP())
	}
}
