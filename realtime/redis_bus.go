package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/online-bazar/bazar-backend/logger"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "bazar:realtime"

// RedisBus publishes to a Redis pub/sub channel and forwards everything it
// receives into the local hub.
type RedisBus struct {
	rdb     *redis.Client
	hub     *Hub
	log     *logger.Logger
	channel string
	sub     *redis.PubSub
}

func NewRedisBus(rdb *redis.Client, hub *Hub, log *logger.Logger, channel string) (*RedisBus, error) {
	if rdb == nil {
		return nil, errors.New("redis client required")
	}
	if hub == nil {
		return nil, errors.New("hub required")
	}
	if log == nil {
		log = logger.Nop()
	}
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisBus{rdb: rdb, hub: hub, log: log.With("component", "realtime.RedisBus"), channel: channel}, nil
}

func (b *RedisBus) Publish(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// Start subscribes and forwards in the background until ctx is done.
func (b *RedisBus) Start(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.sub = sub

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("[realtime] bad bus payload", "error", err)
					continue
				}
				b.hub.Broadcast(msg)
			}
		}
	}()
	b.log.Info("[realtime] redis bus forwarding", "channel", b.channel)
	return nil
}

func (b *RedisBus) Close() error {
	if b.sub != nil {
		return b.sub.Close()
	}
	return nil
}
