package y4m

import "errors"

var (
	ErrNotMuxed     = errors.New("y4m: stream header has not been written")
	ErrAlreadyMuxed = errors.New("y4m: stream header already written")
	ErrFrameSize    = errors.New("y4m: frame size does not match the stream header")
)
