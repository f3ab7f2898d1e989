package minio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/server/storage"
)

// fakeS3 минимальная эмуляция S3 API: HEAD/PUT bucket, PUT/GET/DELETE object
type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	buckets map[string]bool
	mu      sync.Mutex
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
		case http.MethodPut:
			f.buckets[bucket] = true
		case http.MethodGet:
			// GetBucketLocation
			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[path] = data
		f.types[path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		data, ok := f.objects[path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message><Key>`+key+`</Key><BucketName>`+bucket+`</BucketName></Error>`)
			}
			return
		}
		w.Header().Set("Content-Type", f.types[path])
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		_, _ = w.Write(data)
	case http.MethodDelete:
		delete(f.objects, path)
		w.WriteHeader(http.StatusNoContent)
	}
}

func newFakeStore(t *testing.T) (*PhotoStore, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}, buckets: map[string]bool{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := New(context.Background(), Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "checkin-photos",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store, fake
}

func TestPhotoStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, fake := newFakeStore(t)
	assert.True(t, fake.buckets["checkin-photos"], "bucket is created on start")

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x10}
	require.NoError(t, store.PutPhoto(ctx, "p1", "image/jpeg", data))
	assert.Equal(t, "image/jpeg", fake.types["checkin-photos/photos/p1"])

	got, err := store.GetPhoto(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.DeletePhoto(ctx, "p1"))
	_, err = store.GetPhoto(ctx, "p1")
	assert.ErrorIs(t, err, storage.ErrPhotoNotFound)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "photos/abc", ObjectName("abc"))
}
