package async

import "errors"

var (
	ErrTimeout  = errors.New("async: operation timed out waiting for future completion")
	ErrPanic    = errors.New("async: function panicked")
	ErrRejected = errors.New("async: future rejected")
)
