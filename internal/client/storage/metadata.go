package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// SyncState итог последнего прохода синхронизации очереди
type SyncState struct {
	LastError    string `json:"last_error,omitempty"`
	LastSyncAtMs int64  `json:"last_sync_at_ms"`
	Succeeded    int    `json:"succeeded"`
	Failed       int    `json:"failed"`
	Skipped      int    `json:"skipped"`
}

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveSyncState saves the outcome of the last sync pass
	SaveSyncState(ctx context.Context, state *SyncState) error

	// GetSyncState retrieves the outcome of the last sync pass
	// Returns a zero state if no sync has been performed yet
	GetSyncState(ctx context.Context) (*SyncState, error)
}
