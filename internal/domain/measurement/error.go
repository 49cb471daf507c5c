package measurement

import "errors"

var (
	ErrNotFound     = errors.New("measurement not found")
	ErrInvalidInput = errors.New("invalid measurement data")
)
