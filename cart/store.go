package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"vitrina/models"
	"vitrina/rdx"

	"github.com/redis/go-redis/v9"
)

// Store persists a whole cart as one unit under the user's key.
type Store interface {
	// Load returns the stored cart, or nil when nothing usable is stored.
	// Malformed payloads are treated as absent, not as errors.
	Load(ctx context.Context, userID string) ([]models.LineItem, error)
	Save(ctx context.Context, userID string, items []models.LineItem) error
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func changeChannel(userID string) string {
	return "cart:changed:" + userID
}

// RedisStore keeps each cart as a JSON array blob at cart:<userID> and
// publishes a change event after every successful write so other sessions
// can re-hydrate.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func (s *RedisStore) Load(ctx context.Context, userID string) ([]models.LineItem, error) {
	raw, err := rdx.Conn.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("cart: discarding malformed payload for %s: %v", userID, err)
		return nil, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, items []models.LineItem) error {
	if items == nil {
		items = []models.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := rdx.Conn.Set(ctx, cartKey(userID), data, 0).Err(); err != nil {
		return err
	}

	// Best effort; a lost event only delays re-hydration elsewhere.
	if err := rdx.Conn.Publish(ctx, changeChannel(userID), data).Err(); err != nil {
		log.Printf("cart: change publish failed for %s: %v", userID, err)
	}
	return nil
}

// MemStore is an in-process Store used by tests and as a degraded
// fallback when Redis is unavailable.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Load(ctx context.Context, userID string) ([]models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.blobs[userID]
	if !ok {
		return nil, nil
	}
	var items []models.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

func (s *MemStore) Save(ctx context.Context, userID string, items []models.LineItem) error {
	if items == nil {
		items = []models.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[userID] = data
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a user's stored cart with a non-JSON payload. Test hook.
func (s *MemStore) Corrupt(userID string) {
	s.mu.Lock()
	s.blobs[userID] = []byte("{not json")
	s.mu.Unlock()
}
