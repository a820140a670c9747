package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/highburybarber/booking-api/internal/domain/appointment"
)

// AvailabilityCache keeps recently resolved per-employee availability in
// redis with a short TTL. Best-effort only: every method tolerates a nil
// receiver and redis outages, since the resolver can always recompute.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func availabilityKey(employeeID uint, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", employeeID, date.Format("2006-01-02"))
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (*domain.EmployeeAvailability, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(employeeID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var out domain.EmployeeAvailability
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	value *domain.EmployeeAvailability,
) {
	if c == nil || value == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, availabilityKey(employeeID, date), raw, c.ttl)
}

// Invalidate drops the cached day for one employee; called after any write
// that changes the booked-slot set.
func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) {
	if c == nil {
		return
	}
	c.client.Del(ctx, availabilityKey(employeeID, date))
}
