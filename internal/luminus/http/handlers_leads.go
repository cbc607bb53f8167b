package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
)

func (h *Handler) listLeads(c *gin.Context) {
	items, err := h.store.ListLeads(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "leads": items})
}

func (h *Handler) createLead(c *gin.Context) {
	var req service.CreateLeadInput
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	created, err := h.cascade.CreateLead(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "lead": created})
}

type transitionReq struct {
	Status string `json:"status"`
}

func (h *Handler) transitionLead(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.cascade.TransitionLeadStatus(c.Request.Context(), c.Param("id"), domain.LeadStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLeadStatus):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid lead status"})
		case errors.Is(err, domain.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "lead not found"})
		default:
			// The lead may have moved before the client materialization
			// failed; surface the failed step alongside what landed.
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "result": res})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": res})
}
