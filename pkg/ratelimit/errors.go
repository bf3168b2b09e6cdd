package ratelimit

import "errors"

var (
	ErrInvalidLimit = errors.New("invalid limit")
	ErrInvalidBurst = errors.New("invalid burst")
	ErrKeyRequired  = errors.New("key is required")
)
