package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	activityChannelPrefix = "checksync:activity:"
	NotificationChannel   = "checksync:notifications"
)

// ActivityChannel is the pub/sub channel for one checklist's feed.
func ActivityChannel(checklistID string) string {
	return activityChannelPrefix + checklistID
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes events as JSON for live subscribers.
type RedisPublisher struct {
	rdb publisher
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.Activity != nil {
		if err := p.send(ctx, ActivityChannel(ev.Activity.ChecklistID), ev.Activity); err != nil {
			return err
		}
	}
	if ev.Notification != nil {
		if err := p.send(ctx, NotificationChannel, ev.Notification); err != nil {
			return err
		}
	}
	return nil
}

func (p *RedisPublisher) send(ctx context.Context, channel string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, channel, b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}
