package sim

import "errors"

var (
	// ErrClosed is returned by operations on a layer after teardown.
	ErrClosed = errors.New("sim: layer closed")

	// ErrUnknownPath indicates an unrecognised pointer path name.
	ErrUnknownPath = errors.New("sim: unknown pointer path")
)
