package exercise

import "errors"

var (
	ErrNotFound     = errors.New("exercise not found")
	ErrInvalidInput = errors.New("invalid exercise data")
)
