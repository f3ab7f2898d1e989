package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrRecordNotFound indicates that no queued check-in has the given local id
	ErrRecordNotFound = errors.New("check-in record not found")

	// ErrDuplicateRecord indicates that a record with the same local id is already queued
	ErrDuplicateRecord = errors.New("check-in record already queued")

	// ErrQueueFull indicates that the offline queue reached its capacity
	ErrQueueFull = errors.New("offline queue is full")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
