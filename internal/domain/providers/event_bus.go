package providers

import (
	"context"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ChangeEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ChangeEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelChanges carries every ChangeEvent.
const EventChannelChanges = "caregroup:changes"
