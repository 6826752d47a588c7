package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=claim.go -destination=../mocks/notification/mock_claim.go -package=mock_notification

// Claimer reserves a send slot before the channel is called, so that two concurrent
// dispatchers cannot both deliver the same reminder.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisClaimer struct {
	client *redis.Client
	prefix string
}

func NewRedisClaimer(client *redis.Client) *RedisClaimer {
	return &RedisClaimer{client: client, prefix: "memoquiz:notify:"}
}

func (c *RedisClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.prefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX %s: %w", key, err)
	}
	return ok, nil
}

func (c *RedisClaimer) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

// NopClaimer always grants the claim. The unique index on notification_logs is then the only guard.
type NopClaimer struct{}

func (NopClaimer) Claim(context.Context, string, time.Duration) (bool, error) { return true, nil }

func (NopClaimer) Release(context.Context, string) error { return nil }

func claimKey(quizID, userID int64, day time.Time) string {
	return fmt.Sprintf("%d:%d:%s", quizID, userID, day.Format(time.DateOnly))
}
