package requirements

import "errors"

var (
	ErrNotFound     = errors.New("requirement not found")
	ErrInvalidInput = errors.New("invalid requirement")
)
