package storage

import "errors"

// Common storage errors
var (
	// ErrCheckinNotFound indicates that check-in was not found in storage
	ErrCheckinNotFound = errors.New("check-in not found")

	// ErrPhotoNotFound indicates that photo was not found in storage
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrLocalIDConflict indicates that local_id is already used by another shipper
	ErrLocalIDConflict = errors.New("local_id belongs to another shipper")
)
