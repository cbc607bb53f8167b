package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
)

func (h *Handler) listTransactions(c *gin.Context) {
	items, err := h.store.ListTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "transactions": items})
}

func (h *Handler) recordTransaction(c *gin.Context) {
	var req service.CreateTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	created, err := h.cascade.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		if created != nil {
			// Entry posted but the client credit failed.
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "transaction": created})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "transaction": created})
}

func (h *Handler) updateTransaction(c *gin.Context) {
	var req service.CreateTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	updated, err := h.cascade.UpdateTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "transaction not found"})
		case errors.Is(err, domain.ErrNegativeAmount):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "transaction": updated})
}

func (h *Handler) deleteTransaction(c *gin.Context) {
	if err := h.cascade.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
