package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Chat(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role": "model",
					"parts": []map[string]any{
						{"text": "Registering Acme now."},
						{"functionCall": map[string]any{
							"name": "create_client",
							"args": map[string]any{"company": "Acme"},
						}},
					},
				},
			}},
		})
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "gemini-2.0-flash", "test-key", SystemPrompt, AgencyTools())
	reply, err := client.Chat(context.Background(),
		[]Message{{Role: "user", Text: "hi"}, {Role: "model", Text: "hello"}},
		"register Acme")
	require.NoError(t, err)

	assert.Equal(t, "Registering Acme now.", reply.Text)
	require.Len(t, reply.Calls, 1)
	assert.Equal(t, "create_client", reply.Calls[0].Name)
	assert.Equal(t, "Acme", reply.Calls[0].Args["company"])

	// transcript plus the new message, system prompt and tools attached
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "register Acme", captured.Contents[2].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	require.Len(t, captured.Tools, 1)
	assert.Len(t, captured.Tools[0].FunctionDeclarations, 3)
}

func TestGeminiClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "API key not valid"},
		})
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "gemini-2.0-flash", "bad-key", "", nil)
	_, err := client.Chat(context.Background(), nil, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiClient_MissingKey(t *testing.T) {
	client := NewGeminiClient("", "gemini-2.0-flash", "", "", nil)
	_, err := client.Chat(context.Background(), nil, "hello")
	assert.Error(t, err)
}
