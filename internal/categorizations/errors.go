package categorizations

import "errors"

var (
	ErrNotFound     = errors.New("categorization not found")
	ErrInvalidInput = errors.New("invalid categorization")
)
