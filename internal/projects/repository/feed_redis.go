package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

const projectChangeChannelPrefix = "structurecare:projects:changed:" // + status

// RedisFeed shares change notifications between instances through Redis Pub/Sub.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) channel(status domain.Status) string {
	return projectChangeChannelPrefix + string(status)
}

func (f *RedisFeed) Publish(ctx context.Context, status domain.Status) error {
	if err := f.client.Publish(ctx, f.channel(status), time.Now().UnixNano()).Err(); err != nil {
		return fmt.Errorf("publish project change: %w", err)
	}
	return nil
}

func (f *RedisFeed) Watch(ctx context.Context, status domain.Status) (<-chan struct{}, error) {
	sub := f.client.Subscribe(ctx, f.channel(status))
	// Wait for the subscription to be confirmed so no publish after Watch returns is missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe project changes: %w", err)
	}

	msgs := sub.Channel()
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
