package decor

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("decor not found")
	ErrDetailTimeout    = errors.New("decor request timed out")
	ErrUnknownDimension = errors.New("unknown filter dimension")
	ErrUnknownSort      = errors.New("unknown sort mode")
	ErrInvalidPageSize  = errors.New("invalid page size")
)

// StatusError is returned when the catalog API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}
