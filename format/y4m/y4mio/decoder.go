package y4mio

import (
	"errors"
	"fmt"

	"github.com/ugparu/goy4m"
	"github.com/ugparu/goy4m/utils/logger"
)

// Decoder is a push decoder: chunks are handed to Feed as they arrive and
// every call returns what they completed. The first error is fatal and is
// returned by every later call. A Decoder must not be used concurrently.
type Decoder struct {
	state  State
	err    error
	frames uint64
}

func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{state: NewState(opts...)}
}

// Feed decodes chunk. The returned Output is valid even when err is not nil
// and holds everything completed before the failure.
func (dec *Decoder) Feed(chunk []byte) (out Output, err error) {
	if dec.err != nil {
		return out, dec.err
	}

	dec.state, out, err = Step(dec.state, chunk)
	if out.Header != nil {
		logger.Debugf(dec, "Header decoded: %s (frame size %d)", out.Header, out.Header.ColourSpace().FrameSize())
	}
	if len(out.Frames) > 0 {
		dec.frames += uint64(len(out.Frames))
		logger.Tracef(dec, "Decoded %d frames from %d bytes", len(out.Frames), len(chunk))
	}
	if err != nil {
		logger.Debugf(dec, "Decoding failed: %s", err.Error())
		dec.err = err
	}
	return
}

// Close signals the end of input. It reports ErrTruncated when the stream
// stopped before the header or inside a frame. Closing twice is a no-op.
func (dec *Decoder) Close() (err error) {
	if dec.err != nil {
		if errors.Is(dec.err, ErrClosed) {
			return nil
		}
		return dec.err
	}

	if n := len(dec.state.Remainder); n > 0 && dec.state.Stage == StageFrame {
		logger.Warningf(dec, "Discarding %d unterminated bytes at end of stream", n)
	}
	if dec.state, err = Finish(dec.state); err != nil {
		logger.Debugf(dec, "Stream truncated: %s", err.Error())
		dec.err = err
		return
	}
	logger.Debugf(dec, "End of stream after %d frames", dec.frames)
	dec.err = ErrClosed
	return
}

// Abort cancels decoding and drops any held over bytes and partial frame.
func (dec *Decoder) Abort() {
	dec.state = Abort(dec.state)
	if dec.err == nil {
		dec.err = ErrClosed
	}
}

// Header returns the stream header once it has been decoded.
func (dec *Decoder) Header() (hdr goy4m.Header, ok bool) {
	if dec.state.Header == nil {
		return
	}
	return *dec.state.Header, true
}

// Frames returns the number of frames decoded so far.
func (dec *Decoder) Frames() uint64 {
	return dec.frames
}

// State returns the current decoder state. The returned value shares buffers
// with the decoder and must not be modified.
func (dec *Decoder) State() State {
	return dec.state
}

func (dec *Decoder) String() string {
	return fmt.Sprintf("Y4M_DEC %s %d", dec.state.Stage, dec.frames)
}
