package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/crypto"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/internal/server/cache"
	"github.com/iudanet/geocheckin/internal/server/metrics"
	"github.com/iudanet/geocheckin/internal/server/storage"
	"github.com/iudanet/geocheckin/internal/server/storage/sqlite"
	"github.com/iudanet/geocheckin/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCache запоминает ответы в памяти и считает инвалидации
type fakeCache struct {
	entries       map[string]*api.MarkersResponse
	invalidations int
	mu            sync.Mutex
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*api.MarkersResponse)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*api.MarkersResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.entries[key]
	return resp, ok
}

func (c *fakeCache) Set(_ context.Context, key string, resp *api.MarkersResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = resp
}

func (c *fakeCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	clear(c.entries)
}

var _ cache.MarkerCache = (*fakeCache)(nil)

type testEnv struct {
	handler *CheckinHandler
	store   *sqlite.Storage
	cache   *fakeCache
	metrics *metrics.Metrics
}

func setupCheckinHandler(t *testing.T) *testEnv {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	env := &testEnv{store: s, cache: newFakeCache(), metrics: metrics.New()}
	env.handler = NewCheckinHandler(setupTestLogger(), s, s.Photos(), env.cache, env.metrics, 60<<20)
	return env
}

// serveAs поднимает сервер, в котором все запросы аутентифицированы как shipperID
func serveAs(t *testing.T, h *CheckinHandler, shipperID string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/checkins", h.Submit)
	mux.HandleFunc("GET /api/v1/checkins", h.History)
	mux.HandleFunc("GET /api/v1/checkins/markers", h.Markers)
	mux.HandleFunc("GET /api/v1/checkins/{id}", h.Detail)
	mux.HandleFunc("GET /api/v1/photos/{id}", h.Photo)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(WithShipperID(r.Context(), shipperID)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRecord(lat, lng float64, photos ...[]byte) *models.CheckinRecord {
	rec := &models.CheckinRecord{
		LocalID:      uuid.NewString(),
		OrderID:      "ORD-1001",
		Notes:        "left at reception",
		AddressLabel: "12 Nguyen Hue, District 1",
		Position: models.GeoPosition{
			Latitude:       lat,
			Longitude:      lng,
			AccuracyMeters: 12,
			Altitude:       models.Float64Ptr(9.5),
			Source:         models.SourceDeviceSensor,
			CapturedAtMs:   time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC).UnixMilli(),
		},
	}
	if len(photos) == 0 {
		photos = [][]byte{{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}}
	}
	for _, data := range photos {
		rec.Photos = append(rec.Photos, models.PhotoBlob{
			ID:        uuid.NewString(),
			Filename:  "photo.jpg",
			MimeType:  "image/jpeg",
			Checksum:  crypto.PhotoChecksum(data),
			Data:      data,
			SizeBytes: int64(len(data)),
		})
	}
	return rec
}

var _ storage.CheckinStorage = (*sqlite.Storage)(nil)
