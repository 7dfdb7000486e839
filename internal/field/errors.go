package field

import "errors"

var (
	// ErrInvalidParams indicates a parameter outside its usable domain.
	ErrInvalidParams = errors.New("field: invalid parameters")

	// ErrInvalidRange indicates a sampling range with Min > Max or a
	// non-finite bound.
	ErrInvalidRange = errors.New("field: invalid range")
)
