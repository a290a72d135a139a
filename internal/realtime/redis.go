package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisBroker implements Broker over Redis pub/sub. The exclude-origin
// marker travels inside the envelope and is honored on the delivery side,
// since Redis itself fans out to every subscriber.
type redisBroker struct {
	client *redis.Client
}

// NewRedisBroker wraps an already-connected Redis client.
func NewRedisBroker(client *redis.Client) Broker {
	return &redisBroker{client: client}
}

func (b *redisBroker) Publish(ctx context.Context, channel, name string, payload interface{}, opts ...PublishOption) error {
	settings := ResolvePublishOptions(opts...)

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope, err := json.Marshal(Event{
		Channel:       channel,
		Name:          name,
		Payload:       raw,
		ExcludeSocket: settings.ExcludeSocket,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	return b.client.Publish(ctx, channel, envelope).Err()
}

func (b *redisBroker) Subscribe(ctx context.Context, channel, socketID string) (<-chan Event, error) {
	pubsub := b.client.Subscribe(ctx, channel)

	// Confirm the subscription before handing out the channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				// Self-echo suppression: the origin already applied the
				// change optimistically.
				if event.ExcludeSocket != "" && event.ExcludeSocket == socketID {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func (b *redisBroker) Close() error {
	return b.client.Close()
}
