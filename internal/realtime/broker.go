package realtime

import (
	"context"
	"encoding/json"
)

// Event is the envelope fanned out to subscribers of a channel.
// ExcludeSocket names the origin connection that already applied the change
// optimistically; delivery drops the event for that subscriber only.
type Event struct {
	Channel       string          `json:"channel"`
	Name          string          `json:"name"`
	Payload       json.RawMessage `json:"payload"`
	ExcludeSocket string          `json:"excludeSocket,omitempty"`
}

// PublishSettings is the resolved per-call configuration a Broker
// implementation honors.
type PublishSettings struct {
	ExcludeSocket string
}

// PublishOption adjusts a single publish call.
type PublishOption func(*PublishSettings)

// WithExcludeSocket excludes the named origin connection from delivery of
// the published event.
func WithExcludeSocket(socketID string) PublishOption {
	return func(s *PublishSettings) {
		if socketID != "" {
			s.ExcludeSocket = socketID
		}
	}
}

// ResolvePublishOptions folds opts into effective settings.
func ResolvePublishOptions(opts ...PublishOption) PublishSettings {
	var settings PublishSettings
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// Broker is the topic-based publish/subscribe boundary. It is created once
// at startup and injected into every service that publishes change events.
type Broker interface {
	// Publish fans out one event to all current subscribers of the channel.
	Publish(ctx context.Context, channel, name string, payload interface{}, opts ...PublishOption) error
	// Subscribe delivers channel events in receive order, suppressing events
	// whose excluded origin matches socketID.
	Subscribe(ctx context.Context, channel, socketID string) (<-chan Event, error)
	Close() error
}

// ListChannel is the topic carrying item, comment, and reorder events for
// one list.
func ListChannel(listID string) string {
	return "list:" + listID
}

// UserChannel is the topic carrying invitations and direct messages for one
// user.
func UserChannel(userID string) string {
	return "user:" + userID
}
