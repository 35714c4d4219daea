package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrCatalogFetch       = errors.New("league catalog fetch failed")
	ErrRosterFetch        = errors.New("team roster fetch failed")
	ErrImageFetch         = errors.New("image fetch failed")
	ErrInvalidRosterQuery = errors.New("league has no usable name to query")
)
