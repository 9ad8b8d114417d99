package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"novamart_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

// CartTTL : un panier inactif expire au bout de 30 jours
const CartTTL = 30 * 24 * time.Hour

// Store persiste un panier par utilisateur (document unique).
type Store interface {
	// Get retourne nil (sans erreur) si l'utilisateur n'a pas encore de panier.
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
	Delete(ctx context.Context, userID string) error
}

// =============================================
// REDIS (production)
// =============================================

// RedisStore stocke chaque panier en JSON sous la clé cart:<userID>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(userID), data, CartTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}

// =============================================
// MÉMOIRE (tests)
// =============================================

// MemoryStore garde les paniers en mémoire, pour les tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]models.CartItem, len(items))
	copy(saved, items)
	s.carts[userID] = saved
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
