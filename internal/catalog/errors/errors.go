package errors

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")

	ErrAuditoriumNotFound = errors.New("auditorium not found")

	ErrPersonNotFound = errors.New("person not found")

	ErrDuplicateID = errors.New("an entity with this ID already exists")
)
