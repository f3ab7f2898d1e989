package queue

import (
	"errors"

	"github.com/iudanet/geocheckin/internal/client/storage"
)

var (
	// ErrQueueFull is returned by Enqueue when the offline queue reached capacity.
	// The caller has to get online and sync before capturing more check-ins.
	ErrQueueFull = storage.ErrQueueFull

	// ErrRecordNotFound is returned when no queued record has the given local id
	ErrRecordNotFound = storage.ErrRecordNotFound

	// ErrRecordBusy is returned when the record is being submitted right now
	ErrRecordBusy = errors.New("check-in is being synced")

	// ErrNotFailed is returned by Retry for records that did not reach the retry ceiling
	ErrNotFailed = errors.New("check-in is not in failed state")
)
