package assistant

import (
	"context"
	"fmt"
	"log"

	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
)

// Service relays a chat turn to the model and dispatches whatever actions
// it requested through the cascade engine.
type Service struct {
	client  llm.Client
	cascade *service.CascadeService
}

// NewService creates a new assistant service.
func NewService(client llm.Client, cascade *service.CascadeService) *Service {
	return &Service{client: client, cascade: cascade}
}

// ChatResult is one completed assistant turn.
type ChatResult struct {
	Reply   string   `json:"reply"`
	Actions []string `json:"actions"`
}

// Chat sends the transcript to the model, executes each recognized
// requested action in order, and folds per-action confirmations (or
// failures) into the reply text. An action failure does not abort the
// turn; it is reported inline so the user sees what partially completed.
func (s *Service) Chat(ctx context.Context, history []llm.Message, message string) (*ChatResult, error) {
	reply, err := s.client.Chat(ctx, history, message)
	if err != nil {
		return nil, fmt.Errorf("assistant chat: %w", err)
	}

	res := &ChatResult{Reply: reply.Text}
	for _, call := range reply.Calls {
		cmd, known, err := ParseCommand(call)
		if !known {
			log.Printf("[assistant] skipping unknown action %q", call.Name)
			continue
		}
		if err != nil {
			log.Printf("[assistant] bad arguments for %q: %v", call.Name, err)
			res.Reply += fmt.Sprintf("\n\nCould not run %s: invalid arguments.", call.Name)
			continue
		}

		confirmation, err := cmd.Execute(ctx, s.cascade)
		if err != nil {
			log.Printf("[assistant] action %q failed: %v", call.Name, err)
			res.Reply += fmt.Sprintf("\n\nCould not run %s: %v.", call.Name, err)
			continue
		}
		res.Actions = append(res.Actions, call.Name)
		res.Reply += "\n\n" + confirmation
	}

	if res.Reply == "" {
		res.Reply = "Done."
	}
	return res, nil
}
