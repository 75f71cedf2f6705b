package payment

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const lockTTL = 2 * time.Minute

// Lock serializes confirmation attempts for one provider transaction.
type Lock interface {
	Acquire(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}

// RedisLock takes a SetNX lock keyed on the transaction id, so two
// concurrent confirmations of the same session cannot both pass the
// idempotency check. The TTL bounds the damage of a crashed holder.
type RedisLock struct {
	Client *redis.Client
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{Client: client}
}

func (l *RedisLock) key(transactionID string) string {
	return "payment_lock:" + transactionID
}

func (l *RedisLock) Acquire(ctx context.Context, transactionID string) (bool, error) {
	return l.Client.SetNX(ctx, l.key(transactionID), "1", lockTTL).Result()
}

func (l *RedisLock) Release(ctx context.Context, transactionID string) error {
	_, err := l.Client.Del(ctx, l.key(transactionID)).Result()
	return err
}
