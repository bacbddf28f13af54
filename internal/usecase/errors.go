package usecase

import "errors"

var (
	// ErrInvalidPagination is practically unreachable given clamping, but the
	// contract defines it for callers that bypass the clamp.
	ErrInvalidPagination = errors.New("pagination parameters out of range")

	// ErrStoreUnavailable means the listings store could not be reached or
	// timed out. It is never conflated with an empty result.
	ErrStoreUnavailable = errors.New("listings store unavailable")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("already exists")
	ErrInternal     = errors.New("internal error")
)
