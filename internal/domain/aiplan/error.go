package aiplan

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid plan request")
	ErrUpstream       = errors.New("upstream model unavailable")
	ErrUnparseable    = errors.New("cannot parse plan text")
)
