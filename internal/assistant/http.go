package assistant

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
)

// Handler exposes the assistant chat endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates a new assistant handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type chatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type chatReq struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history,omitempty"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Text: m.Text})
	}

	res, err := h.svc.Chat(c.Request.Context(), history, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reply": res.Reply, "actions": res.Actions})
}

// Register attaches assistant routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}
