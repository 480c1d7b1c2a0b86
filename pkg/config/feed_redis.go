package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisFeed delivers change notifications over a Redis pub/sub channel.
// Whatever updates the store publishes to the channel; the payload is
// advisory and the Manager re-reads the store on every notice.
type RedisFeed struct {
	client  *redis.Client
	channel string
	log     zerolog.Logger
	sub     *redis.PubSub
}

// NewRedisFeed creates a feed subscribed to the given channel
func NewRedisFeed(addr, password string, db int, channel string, log zerolog.Logger) *RedisFeed {
	return &RedisFeed{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		channel: channel,
		log:     log.With().Str("component", "config_feed").Logger(),
	}
}

// Subscribe opens the pub/sub channel and returns the notice stream. The
// stream closes when ctx is cancelled or the feed is closed.
func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan Notice, error) {
	f.sub = f.client.Subscribe(ctx, f.channel)

	// Confirm the subscription before handing out the channel so a dead
	// Redis surfaces here rather than as silence later.
	if _, err := f.sub.Receive(ctx); err != nil {
		_ = f.sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}

	msgs := f.sub.Channel()
	out := make(chan Notice, 8)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				f.log.Debug().Str("payload", msg.Payload).Msg("Config change notice received")
				select {
				case out <- Notice{Payload: msg.Payload, At: time.Now().UTC()}:
				default:
					// Consumer is behind; dropping is safe because every
					// notice triggers the same store re-read.
				}
			}
		}
	}()

	f.log.Info().Str("channel", f.channel).Msg("Subscribed to config change feed")
	return out, nil
}

// Close shuts down the subscription and the client
func (f *RedisFeed) Close() error {
	if f.sub != nil {
		_ = f.sub.Close()
	}
	return f.client.Close()
}
