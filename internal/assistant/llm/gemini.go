// Package llm is the client for the hosted generative model behind the
// assistant. It speaks the generateContent REST API directly: declared
// function tools go out with the conversation, text and function-call
// parts come back.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Message is one turn of the conversation transcript.
type Message struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// FunctionCall is an action the model asked the system to run.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Reply is the model's answer: free text plus zero or more requested
// function calls.
type Reply struct {
	Text  string
	Calls []FunctionCall
}

// Schema describes one parameter (or parameter object) of a declared
// function.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// FunctionDeclaration declares one callable action to the model.
type FunctionDeclaration struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  Schema `json:"parameters"`
}

// Client is the conversational surface the assistant service needs.
type Client interface {
	Chat(ctx context.Context, history []Message, message string) (*Reply, error)
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	baseURL      string
	model        string
	apiKey       string
	systemPrompt string
	tools        []FunctionDeclaration
	httpClient   *http.Client
}

// NewGeminiClient creates a client for the given model. An empty baseURL
// falls back to the public endpoint.
func NewGeminiClient(baseURL, model, apiKey, systemPrompt string, tools []FunctionDeclaration) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		model:        model,
		apiKey:       apiKey,
		systemPrompt: systemPrompt,
		tools:        tools,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiPart struct {
	Text         string        `json:"text,omitempty"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Tools             []geminiTool    `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the transcript plus the new user message and parses the
// model's reply.
func (c *GeminiClient) Chat(ctx context.Context, history []Message, message string) (*Reply, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, geminiContent{
			Role:  m.Role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	reqBody := geminiRequest{Contents: contents}
	if c.systemPrompt != "" {
		reqBody.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: c.systemPrompt}},
		}
	}
	if len(c.tools) > 0 {
		reqBody.Tools = []geminiTool{{FunctionDeclarations: c.tools}}
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", out.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gemini error (status %d)", resp.StatusCode)
	}

	reply := &Reply{}
	if len(out.Candidates) > 0 {
		var text strings.Builder
		for _, part := range out.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
			if part.FunctionCall != nil {
				reply.Calls = append(reply.Calls, *part.FunctionCall)
			}
		}
		reply.Text = strings.TrimSpace(text.String())
	}
	return reply, nil
}
