package api

import "errors"

var (
	// ErrUnavailable indicates the server could not be reached or did not
	// answer in time.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized indicates the server rejected the credentials or token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServer indicates a non-2xx response other than unauthorized.
	ErrServer = errors.New("server error")

	// ErrInvalidResponse indicates a 2xx response whose body is missing
	// required fields or cannot be decoded.
	ErrInvalidResponse = errors.New("invalid server response")
)
