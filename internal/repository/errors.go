package repository

import "errors"

// ErrJobNotFound indicates that no job exists for the requested id
var ErrJobNotFound = errors.New("job not found")

// ErrJobExists indicates that a job with the same id is already stored.
// Create never overwrites, so callers retry with a fresh id.
var ErrJobExists = errors.New("job already exists")

// IsNotFound checks if an error is a missing-job error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}
