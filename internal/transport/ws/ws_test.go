package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/dogs/internal/domain/event"
	"github.com/alanyang/dogs/internal/transport/ws"
)

func init() { gin.SetMode(gin.TestMode) }

func newHub(t *testing.T) (*ws.Hub, string) {
	t.Helper()
	hub := ws.NewHub()
	r := gin.New()
	hub.Register(r.Group("/ws"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcast(t *testing.T) {
	hub, url := newHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	sent := event.New(event.TypeScreenOpened, uuid.New(), "BreedPhotos/hound")
	hub.Broadcast(sent)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var got event.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.Type, got.Type)
	assert.Equal(t, sent.SessionID, got.SessionID)
	assert.Equal(t, "BreedPhotos/hound", got.Route)
}

func TestBroadcast_SessionFilter(t *testing.T) {
	hub, url := newHub(t)
	mine := uuid.New()
	conn := dial(t, url+"?session_id="+mine.String())
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(event.New(event.TypeSessionOpened, uuid.New(), "BreedsList"))
	hub.Broadcast(event.New(event.TypeSessionClosed, mine, ""))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var got event.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, event.TypeSessionClosed, got.Type, "events of other sessions are filtered out")
	assert.Equal(t, mine, got.SessionID)
}

func TestHub_InvalidSessionFilter(t *testing.T) {
	_, url := newHub(t)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?session_id=nope", nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub, url := newHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}
