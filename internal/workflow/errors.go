package workflow

import "errors"

var (
	ErrInvalidDocument    = errors.New("invalid workflow document")
	ErrUnsupportedVersion = errors.New("unsupported workflow version")
	ErrChecksumMismatch   = errors.New("workflow checksum mismatch")
	ErrNotFound           = errors.New("workflow export not found")
)
