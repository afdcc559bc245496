package y4mio

import (
	"errors"
	"fmt"
)

var (
	ErrSignature      = errors.New("y4mio: invalid signature")
	ErrFrameSignature = errors.New("y4mio: invalid frame signature")
	ErrFrameTooLarge  = errors.New("y4mio: frame size exceeds the maximum frame size limit")
	ErrLineTooLong    = errors.New("y4mio: line exceeds the maximum line size limit")
	ErrTruncated      = errors.New("y4mio: stream ended mid-object")
	ErrClosed         = errors.New("y4mio: decoder closed")
	ErrState          = errors.New("y4mio: inconsistent decoder state")
)

// ParseError reports the stream offset of the line that could not be
// decoded. Err is the underlying cause, reachable with errors.Is.
type ParseError struct {
	Offset int64
	Err    error
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("y4mio: parse error at offset %d: %s", p.Offset, p.Err)
}

func (p *ParseError) Unwrap() error {
	return p.Err
}
