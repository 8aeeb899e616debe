package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultAuditLimit = 50

type AuditController struct {
	recorder AuditRecorder
}

func NewAuditController(recorder AuditRecorder) *AuditController {
	return &AuditController{recorder: recorder}
}

// GetAuditEvents returns the most recent catalog mutations as JSON.
// GET /audit?limit=N
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultAuditLimit
	}

	events, err := ac.recorder.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load audit events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"limit":  limit,
		"count":  len(events),
	})
}
