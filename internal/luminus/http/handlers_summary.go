package http

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func (h *Handler) pipelineSummary(c *gin.Context) {
	sum, err := h.summary.Pipeline(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": sum})
}

func (h *Handler) financeSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if !monthPattern.MatchString(month) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "month must be YYYY-MM"})
		return
	}

	sum, err := h.summary.Finance(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "summary": sum})
}

func (h *Handler) runReconcile(c *gin.Context) {
	report, err := h.reconcile.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": report})
}
