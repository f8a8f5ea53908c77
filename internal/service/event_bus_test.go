package service

import (
	"testing"
	"time"

	"rangerblock/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_FiltersByKind(t *testing.T) {
	bus := NewEventBus(4, newTestLogger())

	blocks, unsubBlocks := bus.Subscribe(domain.EventBlockApplied)
	defer unsubBlocks()
	all, unsubAll := bus.Subscribe()
	defer unsubAll()

	bus.Publish(domain.Event{Kind: domain.EventTransferAccepted, At: time.Now()})
	bus.Publish(domain.Event{Kind: domain.EventBlockApplied, At: time.Now()})

	require.Len(t, all, 2)
	assert.Equal(t, domain.EventTransferAccepted, (<-all).Kind)
	assert.Equal(t, domain.EventBlockApplied, (<-all).Kind)

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.EventBlockApplied, (<-blocks).Kind)
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := NewEventBus(1, newTestLogger())
	ch, unsub := bus.Subscribe()
	defer unsub()

	bus.Publish(domain.Event{Kind: domain.EventTransferAccepted})
	bus.Publish(domain.Event{Kind: domain.EventTransferRejected})

	require.Len(t, ch, 1)
	assert.Equal(t, domain.EventTransferAccepted, (<-ch).Kind)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(1, newTestLogger())
	ch, unsub := bus.Subscribe()

	unsub()
	unsub()

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { bus.Publish(domain.Event{Kind: domain.EventBlockApplied}) })
}
