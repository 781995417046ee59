package domain

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrMalformedInput = errors.New("malformed raw sleep data")
	ErrInvalidWindow  = errors.New("invalid time window")
)
