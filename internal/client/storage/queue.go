package storage

import (
	"context"

	"github.com/iudanet/geocheckin/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the durable offline check-in queue.
// Every method commits its change before returning, so a restart replays
// exactly the last committed state.
type QueueStorage interface {
	// InsertRecord appends the record (with photo bytes) to the tail of the queue.
	// Returns ErrQueueFull when the queue already holds capacity records
	// and ErrDuplicateRecord when LocalID is already queued.
	InsertRecord(ctx context.Context, rec *models.CheckinRecord, capacity int) error

	// GetRecord returns the record including photo bytes.
	// Returns ErrRecordNotFound if the record does not exist.
	GetRecord(ctx context.Context, localID string) (*models.CheckinRecord, error)

	// ListRecords returns all records in FIFO creation order without photo bytes.
	ListRecords(ctx context.Context) ([]*models.CheckinRecord, error)

	// UpdateRecord atomically reads the record, applies fn and writes it back.
	// Photo bytes are not passed to fn and are never rewritten.
	UpdateRecord(ctx context.Context, localID string, fn func(rec *models.CheckinRecord) error) (*models.CheckinRecord, error)

	// DeleteRecord removes the record and its photos.
	// Returns ErrRecordNotFound if the record does not exist.
	DeleteRecord(ctx context.Context, localID string) error

	// CountByStatus returns the number of queued records per status.
	CountByStatus(ctx context.Context) (map[models.CheckinStatus]int, error)
}
