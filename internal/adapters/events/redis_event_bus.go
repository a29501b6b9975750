package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	redisclient "github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/clients/redis"
)

// subscriberBuffer is how many undelivered events a subscriber may lag behind
const subscriberBuffer = 100

// ErrBusClosed is returned by Publish and Subscribe after Close.
var ErrBusClosed = errors.New("event bus closed")

// topic is one Redis subscription fanned out to local subscribers
type topic struct {
	pubsub      *redis.PubSub
	subscribers map[chan *entities.ChangeEvent]struct{}
}

// RedisEventBus publishes change events over Redis Pub/Sub so every API
// instance sees the changes made by the others
type RedisEventBus struct {
	client *redisclient.Client

	mu     sync.Mutex
	topics map[string]*topic
	closed bool
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client: client,
		topics: make(map[string]*topic),
	}
}

// Publish sends event to every subscriber of channel on every instance
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.ChangeEvent) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	if err := b.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	log.Debug().
		Str("channel", channel).
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("action", string(event.Action)).
		Int64("entity_id", event.EntityID).
		Msg("published change event")
	return nil
}

// Subscribe returns a channel of events published on channel. The returned
// channel is closed when ctx is done or the bus is closed.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ChangeEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	t, ok := b.topics[channel]
	if !ok {
		pubsub := b.client.Client().Subscribe(context.Background(), channel)
		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		t = &topic{pubsub: pubsub, subscribers: make(map[chan *entities.ChangeEvent]struct{})}
		b.topics[channel] = t
		go b.dispatch(channel, t)
	}

	events := make(chan *entities.ChangeEvent, subscriberBuffer)
	t.subscribers[events] = struct{}{}
	log.Info().Str("channel", channel).Int("subscribers", len(t.subscribers)).Msg("subscribed to channel")

	go func() {
		<-ctx.Done()
		b.unsubscribe(channel, events)
	}()
	return events, nil
}

// dispatch copies messages from Redis to the local subscribers of t until
// the subscription closes
func (b *RedisEventBus) dispatch(channel string, t *topic) {
	for msg := range t.pubsub.Channel() {
		event, err := decodeEvent(msg.Payload)
		if err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("dropping malformed change event")
			continue
		}

		b.mu.Lock()
		for subscriber := range t.subscribers {
			select {
			case subscriber <- event:
			default:
				log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber is behind, dropping change event")
			}
		}
		b.mu.Unlock()
	}
}

func (b *RedisEventBus) unsubscribe(channel string, events chan *entities.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[channel]
	if !ok {
		return
	}
	if _, ok := t.subscribers[events]; !ok {
		return
	}
	delete(t.subscribers, events)
	close(events)

	if len(t.subscribers) == 0 {
		delete(b.topics, channel)
		if err := t.pubsub.Close(); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to close subscription")
		}
	}
}

// Close ends every subscription and closes all subscriber channels
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	for channel, t := range b.topics {
		for subscriber := range t.subscribers {
			close(subscriber)
		}
		if err := t.pubsub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscription %s: %w", channel, err))
		}
		delete(b.topics, channel)
	}
	return errors.Join(errs...)
}

// decodeEvent parses a published payload. Events without a type are rejected.
func decodeEvent(payload string) (*entities.ChangeEvent, error) {
	var event entities.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, errors.New("change event has no type")
	}
	return &event, nil
}
