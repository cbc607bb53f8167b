package assistant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
)

func TestChatEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newAssistantFixture(t, llm.Reply{
		Text: "On it.",
		Calls: []llm.FunctionCall{
			{Name: llm.ActionCreateClient, Args: map[string]any{"company": "Acme"}},
		},
	})

	r := gin.New()
	NewHandler(svc).Register(r.Group("/assistant"))

	body, _ := json.Marshal(gin.H{
		"message": "register Acme",
		"history": []gin.H{{"role": "user", "text": "hi"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		OK      bool     `json:"ok"`
		Reply   string   `json:"reply"`
		Actions []string `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.OK)
	assert.Contains(t, out.Reply, "Client Acme registered.")
	assert.Equal(t, []string{llm.ActionCreateClient}, out.Actions)
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newAssistantFixture(t, llm.Reply{})

	r := gin.New()
	NewHandler(svc).Register(r.Group("/assistant"))

	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", bytes.NewReader([]byte(`{"message":"  "}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
