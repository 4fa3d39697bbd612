package dogceo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/dogs/internal/adapter/dogceo"
	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
)

const breedsBody = `{"message":{"hound":["afghan","basset"],"akita":[],"basenji":[]},"status":"success"}`

func newClient(t *testing.T, handler http.Handler, cfg dogceo.Config) *dogceo.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + "/api"
	return dogceo.New(cfg)
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func photoPath(id string) string { return "/api/breed/" + id + "/images/random/1" }

// ── FetchBreedList ───────────────────────────────────────────────────────────

func TestFetchBreedList_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/list/all", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, breedsBody)
	})
	mux.HandleFunc(photoPath("hound"), func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":["https://images.dog.ceo/breeds/hound/1.jpg"],"status":"success"}`)
	})
	mux.HandleFunc(photoPath("akita"), func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusInternalServerError, `{"status":"error"}`)
	})
	mux.HandleFunc(photoPath("basenji"), func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":[],"status":"success"}`)
	})
	client := newClient(t, mux, dogceo.Config{})

	got := client.FetchBreedList(context.Background())

	require.Equal(t, result.KindSuccess, got.Kind)
	require.Len(t, got.Data, 3)

	// Upstream document order is preserved.
	assert.Equal(t, "hound", got.Data[0].ID)
	assert.Equal(t, "akita", got.Data[1].ID)
	assert.Equal(t, "basenji", got.Data[2].ID)

	require.NotNil(t, got.Data[0].PhotoURL)
	assert.Equal(t, "https://images.dog.ceo/breeds/hound/1.jpg", *got.Data[0].PhotoURL)
	assert.Nil(t, got.Data[1].PhotoURL, "failed photo fetch must degrade to a missing photo")
	assert.Nil(t, got.Data[2].PhotoURL, "photo response without images must degrade to a missing photo")
}

func TestFetchBreedList_PhotoTransportFailureIsLocal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/list/all", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":{"x":[],"y":[]}}`)
	})
	mux.HandleFunc(photoPath("x"), func(w http.ResponseWriter, r *http.Request) {
		// Drop the connection without answering.
		hj, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		if conn, _, err := hj.Hijack(); err == nil {
			conn.Close()
		}
	})
	mux.HandleFunc(photoPath("y"), func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":["y.jpg"]}`)
	})
	client := newClient(t, mux, dogceo.Config{})

	got := client.FetchBreedList(context.Background())

	require.Equal(t, result.KindSuccess, got.Kind)
	require.Len(t, got.Data, 2)
	assert.Equal(t, breed.Summary{ID: "x"}, got.Data[0])
	require.NotNil(t, got.Data[1].PhotoURL)
	assert.Equal(t, "y.jpg", *got.Data[1].PhotoURL)
}

func TestFetchBreedList_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKind  result.Kind
		wantError string
	}{
		{name: "non-2xx status carries the code", status: http.StatusServiceUnavailable, body: `{}`, wantKind: result.KindFailure, wantError: "503"},
		{name: "404", status: http.StatusNotFound, body: ``, wantKind: result.KindFailure, wantError: "404"},
		{name: "blank body is empty", status: http.StatusOK, body: ``, wantKind: result.KindEmpty},
		{name: "null body is empty", status: http.StatusOK, body: `null`, wantKind: result.KindEmpty},
		{name: "missing message is empty", status: http.StatusOK, body: `{"status":"success"}`, wantKind: result.KindEmpty},
		{name: "null message is empty", status: http.StatusOK, body: `{"message":null}`, wantKind: result.KindEmpty},
		{name: "empty breed map is an empty success", status: http.StatusOK, body: `{"message":{}}`, wantKind: result.KindSuccess},
		{name: "invalid JSON is an exception", status: http.StatusOK, body: `{"message":`, wantKind: result.KindFailure, wantError: "Exception: decode response body: invalid JSON"},
		{name: "wrong message shape is an exception", status: http.StatusOK, body: `{"message":["hound"]}`, wantKind: result.KindFailure, wantError: "Exception: unexpected breeds payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeBody(w, tt.status, tt.body)
			}), dogceo.Config{})

			got := client.FetchBreedList(context.Background())

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantError, got.Error)
		})
	}
}

func TestFetchBreedList_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()
	client := dogceo.New(dogceo.Config{BaseURL: baseURL})

	got := client.FetchBreedList(context.Background())

	assert.Equal(t, result.KindFailure, got.Kind)
	assert.True(t, strings.HasPrefix(got.Error, "Exception: "), got.Error)
}

func TestFetchBreedList_FansOutAllPhotosConcurrently(t *testing.T) {
	const breeds = 5
	var (
		arrived atomic.Int32
		release = make(chan struct{})
		once    sync.Once
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/list/all", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":{"a":[],"b":[],"c":[],"d":[],"e":[]}}`)
	})
	mux.HandleFunc("/api/breed/", func(w http.ResponseWriter, r *http.Request) {
		// Every photo request is held until all of them are in flight.
		if arrived.Add(1) == breeds {
			once.Do(func() { close(release) })
		}
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		writeBody(w, http.StatusOK, `{"message":["p.jpg"]}`)
	})
	client := newClient(t, mux, dogceo.Config{})

	got := client.FetchBreedList(context.Background())

	require.Equal(t, result.KindSuccess, got.Kind)
	assert.EqualValues(t, breeds, arrived.Load())
	for _, s := range got.Data {
		require.NotNil(t, s.PhotoURL, s.ID)
	}
	select {
	case <-release:
	default:
		t.Fatal("photo requests were not all in flight at the same time")
	}
}

func TestFetchBreedList_PhotoConcurrencyCap(t *testing.T) {
	var inFlight, peak atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/breeds/list/all", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":{"a":[],"b":[],"c":[],"d":[],"e":[],"f":[]}}`)
	})
	mux.HandleFunc("/api/breed/", func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		writeBody(w, http.StatusOK, `{"message":["p.jpg"]}`)
	})
	client := newClient(t, mux, dogceo.Config{PhotoConcurrency: 2})

	got := client.FetchBreedList(context.Background())

	require.Equal(t, result.KindSuccess, got.Kind)
	assert.Len(t, got.Data, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

// ── FetchBreedDetail ─────────────────────────────────────────────────────────

func TestFetchBreedDetail_Success(t *testing.T) {
	var gotPath string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeBody(w, http.StatusOK, `{"message":["1.jpg","2.jpg","3.jpg"],"status":"success"}`)
	}), dogceo.Config{})

	got := client.FetchBreedDetail(context.Background(), "hound", 3)

	assert.Equal(t, "/api/breed/hound/images/random/3", gotPath)
	assert.Equal(t, result.Success(breed.Detail{ID: "hound", Images: []string{"1.jpg", "2.jpg", "3.jpg"}}), got)
}

func TestFetchBreedDetail_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   result.Result[breed.Detail]
	}{
		{name: "404", status: http.StatusNotFound, body: `{"status":"error"}`, want: result.Failure[breed.Detail]("404")},
		{name: "null message", status: http.StatusOK, body: `{"message":null}`, want: result.Empty[breed.Detail]()},
		{name: "blank body", status: http.StatusOK, body: ` `, want: result.Empty[breed.Detail]()},
		{name: "no images", status: http.StatusOK, body: `{"message":[]}`, want: result.Success(breed.Detail{ID: "hound", Images: []string{}})},
		{name: "wrong shape", status: http.StatusOK, body: `{"message":"Breed not found"}`, want: result.Failure[breed.Detail]("Exception: unexpected images payload")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeBody(w, tt.status, tt.body)
			}), dogceo.Config{})

			assert.Equal(t, tt.want, client.FetchBreedDetail(context.Background(), "hound", 10))
		})
	}
}

func TestFetchBreedDetail_CancelledContext(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"message":["1.jpg"]}`)
	}), dogceo.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := client.FetchBreedDetail(ctx, "hound", 1)

	assert.Equal(t, result.KindFailure, got.Kind)
	assert.Contains(t, got.Error, "Exception: ")
	assert.Contains(t, got.Error, "context canceled")
}

func TestFetchBreedDetail_RateLimited(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeBody(w, http.StatusOK, `{"message":["1.jpg"]}`)
	}), dogceo.Config{RequestsPerSecond: 1})

	require.True(t, client.FetchBreedDetail(context.Background(), "hound", 1).IsSuccess())

	// The second request would have to wait a full second for a token.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	got := client.FetchBreedDetail(ctx, "hound", 1)

	assert.Equal(t, result.KindFailure, got.Kind)
	assert.True(t, strings.HasPrefix(got.Error, "Exception: "), got.Error)
	assert.EqualValues(t, 1, calls.Load())
}
