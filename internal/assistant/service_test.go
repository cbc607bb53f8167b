package assistant

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminus-agency/luminus-backend/internal/assistant/llm"
	"github.com/luminus-agency/luminus-backend/internal/luminus/service"
	"github.com/luminus-agency/luminus-backend/internal/luminus/store"
)

// scriptedClient returns a canned reply instead of calling the model.
type scriptedClient struct {
	reply llm.Reply
	err   error
}

func (c *scriptedClient) Chat(ctx context.Context, history []llm.Message, message string) (*llm.Reply, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &c.reply, nil
}

func newAssistantFixture(t *testing.T, reply llm.Reply) (*Service, store.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	st := store.NewRedisStore(client)
	cascade := service.NewCascadeService(st)
	return NewService(&scriptedClient{reply: reply}, cascade), st
}

func TestChat_PlainReply(t *testing.T) {
	svc, _ := newAssistantFixture(t, llm.Reply{Text: "March income was R$ 12.400."})

	res, err := svc.Chat(context.Background(), nil, "how was march?")
	require.NoError(t, err)
	assert.Equal(t, "March income was R$ 12.400.", res.Reply)
	assert.Empty(t, res.Actions)
}

func TestChat_ExecutesRequestedActions(t *testing.T) {
	svc, st := newAssistantFixture(t, llm.Reply{
		Text: "On it.",
		Calls: []llm.FunctionCall{
			{Name: llm.ActionCreateClient, Args: map[string]any{
				"company": "Acme", "name": "Jane Doe", "email": "jane@acme.com",
			}},
		},
	})

	res, err := svc.Chat(context.Background(), nil, "register Acme as a client")
	require.NoError(t, err)
	assert.Equal(t, []string{llm.ActionCreateClient}, res.Actions)
	assert.Contains(t, res.Reply, "Client Acme registered.")

	clients, err := st.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Company)
}

func TestChat_UnknownActionMutatesNothing(t *testing.T) {
	svc, st := newAssistantFixture(t, llm.Reply{
		Text: "Deleting everything.",
		Calls: []llm.FunctionCall{
			{Name: "delete_all_clients", Args: map[string]any{}},
		},
	})

	res, err := svc.Chat(context.Background(), nil, "wipe the database")
	require.NoError(t, err)
	assert.Empty(t, res.Actions)
	assert.Equal(t, "Deleting everything.", res.Reply)

	clients, err := st.ListClients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestChat_ActionFailureReportedInline(t *testing.T) {
	svc, _ := newAssistantFixture(t, llm.Reply{
		Calls: []llm.FunctionCall{
			{Name: llm.ActionRecordTransaction, Args: map[string]any{
				"description": "Refund", "amount": float64(-50),
			}},
		},
	})

	res, err := svc.Chat(context.Background(), nil, "record a refund")
	require.NoError(t, err)
	assert.Empty(t, res.Actions)
	assert.Contains(t, res.Reply, "Could not run record_transaction")
}

func TestChat_EmptyReplyDefaults(t *testing.T) {
	svc, _ := newAssistantFixture(t, llm.Reply{})

	res, err := svc.Chat(context.Background(), nil, "…")
	require.NoError(t, err)
	assert.Equal(t, "Done.", res.Reply)
}
