// Package assistant wires the AI chat collaborator into the cascade
// engine. Requested function calls are parsed into a closed set of typed
// commands before anything executes, so an unsupported action is a parse
// miss, not a stray mutation.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
)

// Command is one executable assistant action. Each variant maps to
// exactly one cascade entry point.
type Command interface {
	// Execute runs the command and returns a user-facing confirmation.
	Execute(ctx context.Context, cascade *service.CascadeService) (string, error)
}

// CreateClientCommand registers a client.
type CreateClientCommand struct {
	Company     string `json:"company"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BillingType string `json:"billing_type"`
}

func (c CreateClientCommand) Execute(ctx context.Context, cascade *service.CascadeService) (string, error) {
	created, err := cascade.CreateClient(ctx, service.CreateClientInput{
		Company:     c.Company,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		BillingType: c.BillingType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Client %s registered.", created.Company), nil
}

// OpenProjectCommand starts a project for a named client.
type OpenProjectCommand struct {
	Name        string  `json:"name"`
	ClientName  string  `json:"client_name"`
	Budget      float64 `json:"budget"`
	ServiceType string  `json:"service_type"`
	DueDate     string  `json:"due_date"`
}

func (c OpenProjectCommand) Execute(ctx context.Context, cascade *service.CascadeService) (string, error) {
	created, err := cascade.CreateProject(ctx, service.CreateProjectInput{
		Name:        c.Name,
		ClientName:  c.ClientName,
		Budget:      c.Budget,
		ServiceType: c.ServiceType,
		DueDate:     c.DueDate,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Project %s opened for %s.", created.Name, created.Client), nil
}

// RecordTransactionCommand posts a manual finance entry.
type RecordTransactionCommand struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

func (c RecordTransactionCommand) Execute(ctx context.Context, cascade *service.CascadeService) (string, error) {
	created, err := cascade.RecordTransaction(ctx, service.CreateTransactionInput{
		Description: c.Description,
		Amount:      c.Amount,
		Type:        c.Type,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Finance entry recorded: %s (%.2f).", created.Description, created.Amount), nil
}

// ParseCommand turns a requested function call into a typed command.
// Unknown names return (nil, false, nil): the collaborator may request
// capabilities this build does not have, and those are skipped, never
// raised. Malformed arguments on a known name are an error.
func ParseCommand(call llm.FunctionCall) (Command, bool, error) {
	switch call.Name {
	case llm.ActionCreateClient:
		var cmd CreateClientCommand
		if err := decodeArgs(call.Args, &cmd); err != nil {
			return nil, true, err
		}
		return cmd, true, nil
	case llm.ActionOpenProject:
		var cmd OpenProjectCommand
		if err := decodeArgs(call.Args, &cmd); err != nil {
			return nil, true, err
		}
		return cmd, true, nil
	case llm.ActionRecordTransaction:
		var cmd RecordTransactionCommand
		if err := decodeArgs(call.Args, &cmd); err != nil {
			return nil, true, err
		}
		return cmd, true, nil
	default:
		return nil, false, nil
	}
}

func decodeArgs(args map[string]any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
