package workout

import "errors"

var (
	ErrNotFound     = errors.New("workout not found")
	ErrInvalidInput = errors.New("invalid workout data")
)
