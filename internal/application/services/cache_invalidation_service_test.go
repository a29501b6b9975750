package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func TestCacheInvalidationService_InvalidatesOnEvent(t *testing.T) {
	bus := new(MockEventBus)
	events := make(chan *entities.ChangeEvent, 1)
	bus.On("Subscribe", mock.Anything, providers.EventChannelChanges).Return((<-chan *entities.ChangeEvent)(events), nil)

	target := &countingInvalidator{done: make(chan struct{}, 1)}
	service := services.NewCacheInvalidationService(bus, target)
	require.NoError(t, service.Start())

	events <- entities.NewChangeEvent(entities.ChangeEventAppointment, entities.ChangeActionCreated, 1)

	select {
	case <-target.done:
	case <-time.After(2 * time.Second):
		t.Fatal("invalidation was not triggered")
	}
	service.Stop()

	target.mu.Lock()
	defer target.mu.Unlock()
	assert.Equal(t, 1, target.calls)
}

func TestCacheInvalidationService_StartFailsWhenSubscribeFails(t *testing.T) {
	bus := new(MockEventBus)
	bus.On("Subscribe", mock.Anything, providers.EventChannelChanges).Return(nil, assert.AnError)

	service := services.NewCacheInvalidationService(bus)
	assert.Error(t, service.Start())
}
