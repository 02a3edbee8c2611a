package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reserveTTL covers the booking write window only. The authoritative slot
// rule lives in the bookings store; the guard just shrinks the cross-instance
// race window, so a short expiry is enough and self-heals lost releases.
const reserveTTL = 10 * time.Second

// SlotGuard reserves (lawyer, slot) pairs in Redis with SET NX.
// Key format: slot:<lawyer_id>:<slot_ns>
type SlotGuard struct {
	client *redis.Client
}

// NewSlotGuard creates a SlotGuard wrapping the given Redis client.
func NewSlotGuard(client *redis.Client) *SlotGuard {
	return &SlotGuard{client: client}
}

// Reserve attempts to claim the slot. Returns false when another instance
// holds the reservation.
func (g *SlotGuard) Reserve(ctx context.Context, lawyerID string, slot int64) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(lawyerID, slot), "1", reserveTTL).Result()
	if err != nil {
		return false, fmt.Errorf("slot reserve: %w", err)
	}
	return ok, nil
}

// Release frees the reservation once the booking attempt has resolved.
func (g *SlotGuard) Release(ctx context.Context, lawyerID string, slot int64) error {
	return g.client.Del(ctx, g.key(lawyerID, slot)).Err()
}

func (g *SlotGuard) key(lawyerID string, slot int64) string {
	return fmt.Sprintf("slot:%s:%d", lawyerID, slot)
}
