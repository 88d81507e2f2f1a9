package service

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the presentation layer. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr records a store failure and wraps it so callers can retry
// without losing local state.
func storageErr(err error) error {
	GetMonitor().RecordStoreError()
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
