package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DatabasePinger is the connectivity check behind /health.
// *database.Database satisfies it.
type DatabasePinger interface {
	Ping() error
	Dialect() string
}

// HealthResponse is the /health body. Catalog is omitted when the counts
// could not be read.
type HealthResponse struct {
	Status   string         `json:"status"` // healthy, degraded or unhealthy
	Time     string         `json:"time"`
	Version  string         `json:"version,omitempty"`
	Database string         `json:"database"`
	Catalog  *CatalogCounts `json:"catalog,omitempty"`
}

type HealthController struct {
	db      DatabasePinger
	counter CatalogCounter
	version string
}

// NewHealthController accepts nil for either collaborator; the matching
// check is then reported as not configured or skipped.
func NewHealthController(db DatabasePinger, counter CatalogCounter, version string) *HealthController {
	return &HealthController{db: db, counter: counter, version: version}
}

// Status pings the database and reports the catalog size. An unreachable
// database is a 503; failing counts only degrade the report.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Database: "not configured",
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "error: " + err.Error()
			c.IndentedJSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok (" + h.db.Dialect() + ")"
	}

	if h.counter != nil {
		counts, err := countCatalog(c.Request.Context(), h.counter)
		if err != nil {
			log.Printf("Health check could not count the catalog: %v", err)
			resp.Status = "degraded"
		} else {
			resp.Catalog = &counts
		}
	}

	c.IndentedJSON(http.StatusOK, resp)
}

// Ping answers liveness checks without touching the database.
// GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
