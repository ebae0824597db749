package common

import "errors"

var (
	// Storage errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Configuration errors.
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)
