package payement

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Un PaymentIntent confirmé vide le panier et déclenche l'e-mail de commande ;
// rejouer /verify-payment avec le même paymentId ne doit pas recommencer.
// Le marqueur vit bien plus longtemps que la fenêtre de paiement.
const consumedTTL = 30 * 24 * time.Hour

// ConsumedIntents mémorise les PaymentIntents déjà confirmés.
type ConsumedIntents interface {
	// MarkConsumed retourne true au premier marquage, false pour un rejeu.
	MarkConsumed(ctx context.Context, paymentID string) (bool, error)
}

// =============================================
// REDIS (production)
// =============================================

type RedisConsumedIntents struct {
	client *redis.Client
}

func NewRedisConsumedIntents(client *redis.Client) *RedisConsumedIntents {
	return &RedisConsumedIntents{client: client}
}

func (s *RedisConsumedIntents) MarkConsumed(ctx context.Context, paymentID string) (bool, error) {
	// SETNX : un seul appelant gagne, même en cas de rejeux concurrents
	return s.client.SetNX(ctx, "paiement_confirme:"+paymentID, "1", consumedTTL).Result()
}

// =============================================
// MÉMOIRE (tests)
// =============================================

type MemoryConsumedIntents struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewMemoryConsumedIntents() *MemoryConsumedIntents {
	return &MemoryConsumedIntents{seen: make(map[string]bool)}
}

func (s *MemoryConsumedIntents) MarkConsumed(_ context.Context, paymentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen[paymentID] {
		return false, nil
	}
	s.seen[paymentID] = true
	return true, nil
}
