package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luminus-agency/luminus-backend/internal/luminus/domain"
)

const (
	clientKeyPrefix      = "luminus:client:"      // luminus:client:{id}
	leadKeyPrefix        = "luminus:lead:"        // luminus:lead:{id}
	projectKeyPrefix     = "luminus:project:"     // luminus:project:{id}
	transactionKeyPrefix = "luminus:transaction:" // luminus:transaction:{id}

	clientSetKey      = "luminus:clients"
	leadSetKey        = "luminus:leads"
	projectSetKey     = "luminus:projects"
	transactionSetKey = "luminus:transactions"
)

// RedisStore mirrors the entity collections into Redis as JSON documents
// with one index set per collection. This is the key-value counterpart of
// the Postgres adapter; records carry the same snake_case field names.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) create(ctx context.Context, key, setKey, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", id, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, setKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	return json.Unmarshal(data, v)
}

func (s *RedisStore) update(ctx context.Context, key string, v any, notFound error) error {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check %s: %w", key, err)
	}
	if exists == 0 {
		return notFound
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

// listRaw fetches every member document of a collection set.
func (s *RedisStore) listRaw(ctx context.Context, setKey, keyPrefix string) ([][]byte, error) {
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", setKey, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget %s: %w", setKey, err)
	}

	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			// index set member without a document, skip
			continue
		}
		if str, ok := v.(string); ok {
			out = append(out, []byte(str))
		}
	}
	return out, nil
}

// Clients

func (s *RedisStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	raw, err := s.listRaw(ctx, clientSetKey, clientKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(raw))
	for _, data := range raw {
		var c domain.Client
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return newestFirst(out[i].CreatedAt, out[j].CreatedAt) })
	return out, nil
}

func (s *RedisStore) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	if err := s.get(ctx, clientKeyPrefix+id, &c, domain.ErrClientNotFound); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *RedisStore) CreateClient(ctx context.Context, c *domain.Client) error {
	return s.create(ctx, clientKeyPrefix+c.ID, clientSetKey, c.ID, c)
}

func (s *RedisStore) UpdateClient(ctx context.Context, c *domain.Client) error {
	return s.update(ctx, clientKeyPrefix+c.ID, c, domain.ErrClientNotFound)
}

// Leads

func (s *RedisStore) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	raw, err := s.listRaw(ctx, leadSetKey, leadKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Lead, 0, len(raw))
	for _, data := range raw {
		var l domain.Lead
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return newestFirst(out[i].CreatedAt, out[j].CreatedAt) })
	return out, nil
}

func (s *RedisStore) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	var l domain.Lead
	if err := s.get(ctx, leadKeyPrefix+id, &l, domain.ErrLeadNotFound); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *RedisStore) CreateLead(ctx context.Context, l *domain.Lead) error {
	return s.create(ctx, leadKeyPrefix+l.ID, leadSetKey, l.ID, l)
}

func (s *RedisStore) UpdateLead(ctx context.Context, l *domain.Lead) error {
	return s.update(ctx, leadKeyPrefix+l.ID, l, domain.ErrLeadNotFound)
}

// Projects

func (s *RedisStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	raw, err := s.listRaw(ctx, projectSetKey, projectKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, data := range raw {
		var p domain.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return newestFirst(out[i].CreatedAt, out[j].CreatedAt) })
	return out, nil
}

func (s *RedisStore) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := s.get(ctx, projectKeyPrefix+id, &p, domain.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisStore) CreateProject(ctx context.Context, p *domain.Project) error {
	return s.create(ctx, projectKeyPrefix+p.ID, projectSetKey, p.ID, p)
}

func (s *RedisStore) UpdateProject(ctx context.Context, p *domain.Project) error {
	return s.update(ctx, projectKeyPrefix+p.ID, p, domain.ErrProjectNotFound)
}

// Transactions

func (s *RedisStore) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	raw, err := s.listRaw(ctx, transactionSetKey, transactionKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(raw))
	for _, data := range raw {
		var t domain.Transaction
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return newestFirst(out[i].CreatedAt, out[j].CreatedAt) })
	return out, nil
}

func (s *RedisStore) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.get(ctx, transactionKeyPrefix+id, &t, domain.ErrTransactionNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *RedisStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.create(ctx, transactionKeyPrefix+t.ID, transactionSetKey, t.ID, t)
}

func (s *RedisStore) UpdateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.update(ctx, transactionKeyPrefix+t.ID, t, domain.ErrTransactionNotFound)
}

func (s *RedisStore) DeleteTransaction(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, transactionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if deleted == 0 {
		return domain.ErrTransactionNotFound
	}
	return s.client.SRem(ctx, transactionSetKey, id).Err()
}

// newestFirst orders by creation time descending with a stable fallback
// for equal timestamps.
func newestFirst(a, b time.Time) bool {
	return a.After(b)
}
