package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/geocheckin/internal/client/storage"
)

const (
	keySyncState = "sync_state"
)

// SaveSyncState saves the outcome of the last sync pass
func (s *Storage) SaveSyncState(ctx context.Context, state *storage.SyncState) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}

		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal sync state: %w", err)
		}

		if err := b.Put([]byte(keySyncState), data); err != nil {
			return fmt.Errorf("failed to save sync state: %w", err)
		}

		return nil
	})
}

// GetSyncState retrieves the outcome of the last sync pass
// Returns a zero state if no sync has been performed yet
func (s *Storage) GetSyncState(ctx context.Context) (*storage.SyncState, error) {
	state := &storage.SyncState{}

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}

		data := b.Get([]byte(keySyncState))
		if data == nil {
			// первая синхронизация еще не выполнялась
			return nil
		}

		return json.Unmarshal(data, state)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	return state, nil
}
