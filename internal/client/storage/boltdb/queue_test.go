package boltdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/models"
)

func newRecord(id string, createdAt int64) *models.CheckinRecord {
	return &models.CheckinRecord{
		LocalID: id,
		OrderID: "ORD-" + id,
		Notes:   "left with the concierge",
		Status:  models.StatusPending,
		Position: models.GeoPosition{
			Latitude:       10.8231,
			Longitude:      106.6297,
			AccuracyMeters: 12,
			Altitude:       models.Float64Ptr(4.5),
			Source:         models.SourceDeviceSensor,
			CapturedAtMs:   createdAt,
		},
		Photos: []models.PhotoBlob{
			{ID: id + "-p0", Filename: "door.jpg", MimeType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0x01, 0x02}, SizeBytes: 4},
			{ID: id + "-p1", Filename: "box.jpg", MimeType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0x03}, SizeBytes: 3},
		},
		CreatedAtMs: createdAt,
		UpdatedAtMs: createdAt,
	}
}

func TestQueue_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	rec := newRecord("a", 1000)
	require.NoError(t, store.InsertRecord(ctx, rec, 50))

	got, err := store.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = store.GetRecord(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestQueue_PhotoBytesNotInRecordBody(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	rec := newRecord("a", 1000)
	rec.Photos[0].Data = []byte("raw-photo-marker")
	require.NoError(t, store.InsertRecord(ctx, rec, 0))

	err := store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketQueue).ForEach(func(_, v []byte) error {
			assert.NotContains(t, string(v), "raw-photo-marker")
			return nil
		})
	})
	require.NoError(t, err)
}

func TestQueue_ListIsFIFO(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// одинаковое время создания упорядочивается по порядку вставки
	require.NoError(t, store.InsertRecord(ctx, newRecord("first", 2000), 0))
	require.NoError(t, store.InsertRecord(ctx, newRecord("second", 2000), 0))
	require.NoError(t, store.InsertRecord(ctx, newRecord("older", 1000), 0))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "older", records[0].LocalID)
	assert.Equal(t, "first", records[1].LocalID)
	assert.Equal(t, "second", records[2].LocalID)
	for _, r := range records {
		assert.Nil(t, r.Photos[0].Data, "list must not load photo bytes")
	}
}

func TestQueue_CapacityAndDuplicates(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for i := range 3 {
		require.NoError(t, store.InsertRecord(ctx, newRecord(fmt.Sprintf("r%d", i), int64(i)), 3))
	}

	err := store.InsertRecord(ctx, newRecord("overflow", 10), 3)
	assert.ErrorIs(t, err, storage.ErrQueueFull)

	err = store.InsertRecord(ctx, newRecord("r0", 11), 10)
	assert.ErrorIs(t, err, storage.ErrDuplicateRecord)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestQueue_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	rec := newRecord("durable", 1000)
	require.NoError(t, store.InsertRecord(ctx, rec, 50))
	_, err = store.UpdateRecord(ctx, "durable", func(r *models.CheckinRecord) error {
		r.RetryCount = 1
		r.LastError = "timeout"
		return nil
	})
	require.NoError(t, err)

	before, err := store.GetRecord(ctx, "durable")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// "перезапуск процесса"
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	after, err := reopened.GetRecord(ctx, "durable")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, rec.Photos[0].Data, after.Photos[0].Data)
	assert.Equal(t, uint32(1), after.RetryCount)
}

func TestQueue_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.InsertRecord(ctx, newRecord("a", 1000), 0))

	updated, err := store.UpdateRecord(ctx, "a", func(r *models.CheckinRecord) error {
		assert.Nil(t, r.Photos[0].Data)
		r.Status = models.StatusSyncing
		r.LocalID = "hijack"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSyncing, updated.Status)
	assert.Equal(t, "a", updated.LocalID)

	// ошибка fn откатывает транзакцию
	boom := errors.New("boom")
	_, err = store.UpdateRecord(ctx, "a", func(r *models.CheckinRecord) error {
		r.Status = models.StatusFailed
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSyncing, got.Status)
	assert.Equal(t, []byte{0xFF, 0xD8, 0x01, 0x02}, got.Photos[0].Data)

	_, err = store.UpdateRecord(ctx, "missing", func(*models.CheckinRecord) error { return nil })
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestQueue_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.InsertRecord(ctx, newRecord("a", 1000), 0))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateRecord(ctx, "a", func(r *models.CheckinRecord) error {
				r.RetryCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint32(20), got.RetryCount)
}

func TestQueue_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.InsertRecord(ctx, newRecord("a", 1000), 0))
	// "ab" начинается с "a" - его фото не должны задеваться удалением "a"
	require.NoError(t, store.InsertRecord(ctx, newRecord("ab", 1001), 0))

	require.NoError(t, store.DeleteRecord(ctx, "a"))
	assert.ErrorIs(t, store.DeleteRecord(ctx, "a"), storage.ErrRecordNotFound)

	_, err := store.GetRecord(ctx, "a")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	other, err := store.GetRecord(ctx, "ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0x03}, other.Photos[1].Data)

	err = store.db.View(func(tx *bbolt.Tx) error {
		assert.Equal(t, 2, countKeys(tx.Bucket(bucketPhotos)))
		assert.Equal(t, 1, countKeys(tx.Bucket(bucketQueueIndex)))
		return nil
	})
	require.NoError(t, err)
}

func TestQueue_CountByStatus(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for i, status := range []models.CheckinStatus{models.StatusPending, models.StatusPending, models.StatusFailed} {
		rec := newRecord(fmt.Sprintf("r%d", i), int64(i))
		rec.Status = status
		require.NoError(t, store.InsertRecord(ctx, rec, 0))
	}

	counts, err := store.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusFailed])
	assert.Zero(t, counts[models.StatusSyncing])
}
