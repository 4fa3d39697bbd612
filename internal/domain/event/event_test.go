package event_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dogs/internal/domain/event"
)

func TestChannelFor(t *testing.T) {
	tests := []struct {
		typ  event.Type
		want event.Channel
	}{
		{typ: event.TypeSessionOpened, want: event.ChannelSession},
		{typ: event.TypeSessionClosed, want: event.ChannelSession},
		{typ: event.TypeHostAttached, want: event.ChannelSession},
		{typ: event.TypeHostDetached, want: event.ChannelSession},
		{typ: event.TypeScreenOpened, want: event.ChannelNavigation},
		{typ: event.TypeScreenClosed, want: event.ChannelNavigation},
		{typ: event.TypeNavigation, want: event.ChannelNavigation},
		{typ: event.TypeNavigationDrop, want: event.ChannelNavigation},
		{typ: event.Type("garbage"), want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, event.ChannelFor(tt.typ))
		})
	}
}

func TestNew(t *testing.T) {
	id := uuid.New()
	e := event.New(event.TypeScreenOpened, id, "BreedPhotos/hound")

	assert.Equal(t, event.TypeScreenOpened, e.Type)
	assert.Equal(t, id, e.SessionID)
	assert.Equal(t, "BreedPhotos/hound", e.Route)
	assert.False(t, e.Timestamp.IsZero())
}
