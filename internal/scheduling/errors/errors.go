package errors

import "errors"

var (
	ErrNotFound = errors.New("screening not found")

	ErrTimeConflict = errors.New("screening time conflicts with an existing screening")
)
