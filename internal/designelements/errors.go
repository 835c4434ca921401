package designelements

import "errors"

var (
	ErrNotFound     = errors.New("design element not found")
	ErrInvalidInput = errors.New("invalid design element")
)
