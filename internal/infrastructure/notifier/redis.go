package notifier

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisSink publishes events as JSON on a pub/sub channel.
type RedisSink struct {
	client  Publisher
	channel string
}

func NewRedisSink(client Publisher, channel string) *RedisSink {
	return &RedisSink{
		client:  client,
		channel: channel,
	}
}

func (s *RedisSink) Name() string {
	return "redis"
}

func (s *RedisSink) Send(ctx context.Context, ev Event) error {
	payload, err := jsoniter.ConfigFastest.Marshal(ev)
	if err != nil {
		return fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis.Publish %s: %w", s.channel, err)
	}

	return nil
}
