package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/events"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventTaskCreated, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{ID: "evt-1", Type: events.EventTaskCreated})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].ID)
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(events.EventEmployeeDeleted, func(context.Context, events.Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTaskCreated}))
	assert.False(t, called)
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(events.EventTaskDeleted, func(context.Context, events.Event) error {
		order = append(order, "first")
		return errors.New("handler failure")
	})
	dispatcher.Subscribe(events.EventTaskDeleted, func(context.Context, events.Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTaskDeleted}))
	assert.Equal(t, []string{"first", "second"}, order)
}
