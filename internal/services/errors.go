package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors for the failure kinds an engine can return. Handlers map
// them to HTTP statuses with errors.Is; everything not wrapping one of these
// is treated as a store failure and never shown to clients verbatim.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrStore      = errors.New("storage failure")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrForbidden}, args...)...)
}

// storeErr classifies a raw repository error: record-not-found becomes
// ErrNotFound, a unique-index violation becomes ErrConflict, anything else is
// wrapped as ErrStore with the cause kept for logs.
func storeErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: record absent", ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate record", ErrConflict)
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}
