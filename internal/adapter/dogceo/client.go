// Package dogceo is the remote data source for the public dog.ceo breed API.
package dogceo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alanyang/dogs/internal/domain/breed"
	"github.com/alanyang/dogs/internal/domain/result"
	"github.com/alanyang/dogs/internal/metrics"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
)

const (
	endpointBreedsList  = "breeds_list"
	endpointBreedImages = "breed_images"

	maxBodyBytes = 8 << 20
)

var _ portdogs.DataSource = (*Client)(nil)

type Config struct {
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	// PhotoConcurrency caps the per-breed photo fan-out; zero leaves it unbounded.
	PhotoConcurrency int
	// RequestsPerSecond throttles every outbound request; zero disables it.
	RequestsPerSecond float64
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	photoLimit int
	limiter    *rate.Limiter
}

func New(cfg Config) *Client {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext
	transport.ResponseHeaderTimeout = readTimeout

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		photoLimit: cfg.PhotoConcurrency,
		limiter:    limiter,
	}
}

// FetchBreedList lists all breeds and enriches each one with a single photo.
// Breeds keep the order of the upstream document. A photo that cannot be fetched
// leaves that breed's PhotoURL nil without failing the list.
func (c *Client) FetchBreedList(ctx context.Context) result.Result[[]breed.Summary] {
	body, outcome := c.get(ctx, endpointBreedsList, "/breeds/list/all")
	if !outcome.IsSuccess() {
		return result.Map(outcome, func([]byte) []breed.Summary { return nil })
	}

	message := gjson.GetBytes(body, "message")
	if !message.Exists() || message.Type == gjson.Null {
		return result.Empty[[]breed.Summary]()
	}
	if !message.IsObject() {
		return result.Failure[[]breed.Summary]("Exception: unexpected breeds payload")
	}

	var ids []string
	message.ForEach(func(key, _ gjson.Result) bool {
		ids = append(ids, key.String())
		return true
	})

	photos := c.fetchPhotos(ctx, ids)

	summaries := make([]breed.Summary, len(ids))
	for i, id := range ids {
		summaries[i] = breed.Summary{ID: id, PhotoURL: photos[i]}
	}
	return result.Success(summaries)
}

// FetchBreedDetail fetches imageCount random photos of one breed.
func (c *Client) FetchBreedDetail(ctx context.Context, breedID string, imageCount int) result.Result[breed.Detail] {
	path := "/breed/" + url.PathEscape(breedID) + "/images/random/" + strconv.Itoa(imageCount)
	body, outcome := c.get(ctx, endpointBreedImages, path)
	if !outcome.IsSuccess() {
		return result.Map(outcome, func([]byte) breed.Detail { return breed.Detail{} })
	}

	message := gjson.GetBytes(body, "message")
	if !message.Exists() || message.Type == gjson.Null {
		return result.Empty[breed.Detail]()
	}
	if !message.IsArray() {
		return result.Failure[breed.Detail]("Exception: unexpected images payload")
	}

	images := make([]string, 0, len(message.Array()))
	for _, img := range message.Array() {
		images = append(images, img.String())
	}
	return result.Success(breed.Detail{ID: breedID, Images: images})
}

// fetchPhotos issues one single-image request per breed and joins them all.
// Errors are swallowed per breed, so the group never cancels its siblings.
func (c *Client) fetchPhotos(ctx context.Context, ids []string) []*string {
	photos := make([]*string, len(ids))

	var g errgroup.Group
	if c.photoLimit > 0 {
		g.SetLimit(c.photoLimit)
	}
	for i, id := range ids {
		g.Go(func() error {
			detail := c.FetchBreedDetail(ctx, id, 1)
			if detail.IsSuccess() && len(detail.Data.Images) > 0 {
				photo := detail.Data.Images[0]
				photos[i] = &photo
			}
			return nil
		})
	}
	_ = g.Wait()

	return photos
}

// get performs one request and classifies it: a non-2xx status is a Failure
// carrying the code, a blank or null body is Empty, a transport or decoding problem
// is a Failure carrying "Exception: <message>".
func (c *Client) get(ctx context.Context, endpoint, path string) ([]byte, result.Result[[]byte]) {
	start := time.Now()
	body, outcome := c.do(ctx, path)
	metrics.ObserveUpstream(endpoint, string(outcome.Kind), time.Since(start))

	if !outcome.IsSuccess() {
		slog.DebugContext(ctx, "dog api request unsuccessful",
			"endpoint", endpoint,
			"path", path,
			"kind", outcome.Kind,
			"error", outcome.Error,
		)
	}
	return body, outcome
}

func (c *Client) do(ctx context.Context, path string) ([]byte, result.Result[[]byte]) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, exception(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, exception(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exception(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, result.Failure[[]byte](strconv.Itoa(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, exception(fmt.Errorf("read response body: %w", err))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, result.Empty[[]byte]()
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, exception(fmt.Errorf("decode response body: invalid JSON"))
	}
	return trimmed, result.Success(trimmed)
}

func exception(err error) result.Result[[]byte] {
	return result.Failure[[]byte]("Exception: " + err.Error())
}
