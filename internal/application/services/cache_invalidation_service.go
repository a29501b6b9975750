package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
)

// Invalidator drops cached data derived from stored records.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CacheInvalidationService drops cached dashboards when change events arrive
type CacheInvalidationService struct {
	eventBus providers.EventBus
	targets  []Invalidator
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(eventBus providers.EventBus, targets ...Invalidator) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		eventBus: eventBus,
		targets:  targets,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for change events
func (s *CacheInvalidationService) Start() error {
	events, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelChanges)
	if err != nil {
		return fmt.Errorf("failed to subscribe to change events: %w", err)
	}

	s.wg.Add(1)
	go s.processEvents(events)
	log.Info().Str("channel", providers.EventChannelChanges).Msg("cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.wg.Wait()
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(events <-chan *entities.ChangeEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.ChangeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Debug().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("action", string(event.Action)).
		Int64("entity_id", event.EntityID).
		Msg("processing cache invalidation")

	for _, t := range s.targets {
		if err := t.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Str("event_id", event.ID).Msg("cache invalidation failed")
		}
	}
}
