package errors

import "errors"

var (
	ErrScreeningNotFound = errors.New("screening not found")

	ErrSelectionRejected = errors.New("seat selection rejected")
)
