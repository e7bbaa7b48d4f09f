package chunker

import "errors"

var (
	// ErrInvalidParameter is returned when input validation fails:
	// empty text, zero chunk size, out-of-range overlap, empty page list.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrProcessingFailed is returned when an unexpected internal fault
	// occurs during segmentation. No panic escapes a chunking call.
	ErrProcessingFailed = errors.New("processing failed")
)
