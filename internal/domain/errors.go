package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrBackendFailure    = errors.New("backend failure")
	ErrMalformedResponse = errors.New("malformed backend response")
	ErrPollTimeout       = errors.New("poll timeout")
	ErrCancelled         = errors.New("cancelled")
)
