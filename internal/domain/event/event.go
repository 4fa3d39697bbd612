package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSessionOpened  Type = "session_opened"
	TypeSessionClosed  Type = "session_closed"
	TypeHostAttached   Type = "host_attached"
	TypeHostDetached   Type = "host_detached"
	TypeScreenOpened   Type = "screen_opened"
	TypeScreenClosed   Type = "screen_closed"
	TypeNavigation     Type = "navigation_requested"
	TypeNavigationDrop Type = "navigation_dropped"
)

// Channel groups event types so one subscription covers a whole domain.
type Channel string

const (
	ChannelSession    Channel = "session"
	ChannelNavigation Channel = "navigation"
)

var typeToChannel = map[Type]Channel{
	TypeSessionOpened:  ChannelSession,
	TypeSessionClosed:  ChannelSession,
	TypeHostAttached:   ChannelSession,
	TypeHostDetached:   ChannelSession,
	TypeScreenOpened:   ChannelNavigation,
	TypeScreenClosed:   ChannelNavigation,
	TypeNavigation:     ChannelNavigation,
	TypeNavigationDrop: ChannelNavigation,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not view state.
// Subscribers read fresh state from the session they refer to.
type Event struct {
	Type      Type      `json:"type"`
	SessionID uuid.UUID `json:"session_id"`
	Route     string    `json:"route,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, sessionID uuid.UUID, routeID string) Event {
	return Event{
		Type:      eventType,
		SessionID: sessionID,
		Route:     routeID,
		Timestamp: time.Now().UTC(),
	}
}
