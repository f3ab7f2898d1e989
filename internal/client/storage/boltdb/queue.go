package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/models"
)

// Раскладка очереди:
//   queue:       createdAtMs(8) | seq(8) -> JSON записи без байтов фото (ключ задает FIFO порядок)
//   queue_index: localID -> ключ в queue
//   photos:      localID | 0x00 | index(2) -> сырые байты фото

func queueKey(createdAtMs int64, seq uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], uint64(createdAtMs))
	binary.BigEndian.PutUint64(key[8:], seq)
	return key
}

func photoPrefix(localID string) []byte {
	return append([]byte(localID), 0)
}

func photoKey(localID string, index int) []byte {
	key := photoPrefix(localID)
	return binary.BigEndian.AppendUint16(key, uint16(index))
}

// InsertRecord appends the record to the tail of the queue
func (s *Storage) InsertRecord(ctx context.Context, rec *models.CheckinRecord, capacity int) error {
	return s.update(func(tx *bbolt.Tx) error {
		queue, err := bucket(tx, bucketQueue)
		if err != nil {
			return err
		}
		index, err := bucket(tx, bucketQueueIndex)
		if err != nil {
			return err
		}
		photos, err := bucket(tx, bucketPhotos)
		if err != nil {
			return err
		}

		if index.Get([]byte(rec.LocalID)) != nil {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateRecord, rec.LocalID)
		}

		// Проверка емкости в той же транзакции, что и вставка
		if capacity > 0 && countKeys(queue) >= capacity {
			return storage.ErrQueueFull
		}

		seq, err := queue.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate queue sequence: %w", err)
		}
		key := queueKey(rec.CreatedAtMs, seq)

		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if err := queue.Put(key, body); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		if err := index.Put([]byte(rec.LocalID), key); err != nil {
			return fmt.Errorf("failed to save record index: %w", err)
		}

		for i, p := range rec.Photos {
			if err := photos.Put(photoKey(rec.LocalID, i), p.Data); err != nil {
				return fmt.Errorf("failed to save photo %d: %w", i, err)
			}
		}

		return nil
	})
}

// GetRecord returns the record including photo bytes
func (s *Storage) GetRecord(ctx context.Context, localID string) (*models.CheckinRecord, error) {
	var rec *models.CheckinRecord

	err := s.view(func(tx *bbolt.Tx) error {
		var err error
		rec, _, err = loadRecord(tx, localID)
		if err != nil {
			return err
		}

		photos, err := bucket(tx, bucketPhotos)
		if err != nil {
			return err
		}

		for i := range rec.Photos {
			// слайсы bbolt валидны только внутри транзакции
			rec.Photos[i].Data = bytes.Clone(photos.Get(photoKey(localID, i)))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListRecords returns all records in FIFO order without photo bytes
func (s *Storage) ListRecords(ctx context.Context) ([]*models.CheckinRecord, error) {
	var records []*models.CheckinRecord

	err := s.view(func(tx *bbolt.Tx) error {
		queue, err := bucket(tx, bucketQueue)
		if err != nil {
			return err
		}

		return queue.ForEach(func(_, v []byte) error {
			rec := &models.CheckinRecord{}
			if err := json.Unmarshal(v, rec); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, rec)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// UpdateRecord atomically applies fn to the stored record
func (s *Storage) UpdateRecord(
	ctx context.Context,
	localID string,
	fn func(rec *models.CheckinRecord) error,
) (*models.CheckinRecord, error) {
	var rec *models.CheckinRecord

	err := s.update(func(tx *bbolt.Tx) error {
		var (
			key []byte
			err error
		)
		rec, key, err = loadRecord(tx, localID)
		if err != nil {
			return err
		}

		if err := fn(rec); err != nil {
			return err
		}
		// ключ и идентичность записи неизменны
		rec.LocalID = localID

		body, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		queue, err := bucket(tx, bucketQueue)
		if err != nil {
			return err
		}
		if err := queue.Put(key, body); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// DeleteRecord removes the record and its photos
func (s *Storage) DeleteRecord(ctx context.Context, localID string) error {
	return s.update(func(tx *bbolt.Tx) error {
		queue, err := bucket(tx, bucketQueue)
		if err != nil {
			return err
		}
		index, err := bucket(tx, bucketQueueIndex)
		if err != nil {
			return err
		}
		photos, err := bucket(tx, bucketPhotos)
		if err != nil {
			return err
		}

		key := index.Get([]byte(localID))
		if key == nil {
			return fmt.Errorf("%w: %s", storage.ErrRecordNotFound, localID)
		}
		key = bytes.Clone(key)

		if err := queue.Delete(key); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		if err := index.Delete([]byte(localID)); err != nil {
			return fmt.Errorf("failed to delete record index: %w", err)
		}

		prefix := photoPrefix(localID)
		c := photos.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Seek(prefix) {
			if err := c.Delete(); err != nil {
				return fmt.Errorf("failed to delete photo: %w", err)
			}
		}

		return nil
	})
}

// CountByStatus returns the number of queued records per status
func (s *Storage) CountByStatus(ctx context.Context) (map[models.CheckinStatus]int, error) {
	counts := make(map[models.CheckinStatus]int)

	err := s.view(func(tx *bbolt.Tx) error {
		queue, err := bucket(tx, bucketQueue)
		if err != nil {
			return err
		}

		return queue.ForEach(func(_, v []byte) error {
			var head struct {
				Status models.CheckinStatus `json:"status"`
			}
			if err := json.Unmarshal(v, &head); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			counts[head.Status]++
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	return counts, nil
}

// loadRecord читает запись по localID; возвращает и ключ в bucket queue
func loadRecord(tx *bbolt.Tx, localID string) (*models.CheckinRecord, []byte, error) {
	queue, err := bucket(tx, bucketQueue)
	if err != nil {
		return nil, nil, err
	}
	index, err := bucket(tx, bucketQueueIndex)
	if err != nil {
		return nil, nil, err
	}

	key := index.Get([]byte(localID))
	if key == nil {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrRecordNotFound, localID)
	}

	body := queue.Get(key)
	if body == nil {
		return nil, nil, fmt.Errorf("%w: %s (dangling index)", storage.ErrRecordNotFound, localID)
	}

	rec := &models.CheckinRecord{}
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return rec, bytes.Clone(key), nil
}

func countKeys(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}
