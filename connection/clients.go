package connection

import (
	"context"
	"fmt"
	"time"

	"checksync/config"

	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

// RedisConnection connects using REDIS_URL when set, otherwise the
// address fields, and pings the server.
func RedisConnection(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		opts = parsed
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func SlackConnection(cfg config.SlackConfig) *slack.Client {
	return slack.New(cfg.Token, slack.OptionDebug(false))
}
