//go:build integration

package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgeventbus "github.com/alanyang/dogs/internal/adapter/postgres/eventbus"
	"github.com/alanyang/dogs/internal/domain/event"
	"github.com/alanyang/dogs/internal/testutil"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	bus := pgeventbus.New(pool)
	ctx := context.Background()

	got := make(chan event.Event, 4)
	sub, err := bus.Subscribe(ctx, event.ChannelSession, func(_ context.Context, e event.Event) {
		got <- e
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	id := uuid.New()
	require.NoError(t, bus.Publish(ctx, event.New(event.TypeScreenOpened, id, "BreedPhotos/hound")))
	require.NoError(t, bus.Publish(ctx, event.New(event.TypeHostDetached, id, "BreedsList")))

	select {
	case e := <-got:
		assert.Equal(t, event.TypeHostDetached, e.Type, "navigation events go to another channel")
		assert.Equal(t, id, e.SessionID)
		assert.Equal(t, "BreedsList", e.Route)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestEventBus_UnsubscribeReleasesConnection(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	bus := pgeventbus.New(pool)

	sub, err := bus.Subscribe(context.Background(), event.ChannelNavigation, func(context.Context, event.Event) {})
	require.NoError(t, err)
	require.Equal(t, int32(1), pool.Stat().AcquiredConns())

	sub.Unsubscribe()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}
