package y4mio

import (
	"bytes"
	"fmt"

	"github.com/ugparu/goy4m"
)

// Output holds what a single Step decoded. Header, when set, precedes every
// frame in Frames.
type Output struct {
	Header *goy4m.Header
	Frames []goy4m.Frame
}

// Step feeds one chunk of any size into the decoder. It takes ownership of
// st: only the returned State may be used afterwards. The concatenation of
// the outputs of consecutive steps depends only on the concatenation of the
// chunks, never on where they were split. Emitted frames never share memory
// with chunk.
//
// On error the returned Output still carries everything decoded before the
// offending line and the returned State is closed.
func Step(st State, chunk []byte) (State, Output, error) {
	var out Output
	if st.Stage == StageClosed {
		return st, out, ErrClosed
	}
	if err := st.validate(); err != nil {
		return st.closed(), out, &ParseError{Offset: st.Consumed, Err: err}
	}

	// Remainder never contains a terminator, so only the new bytes need scanning.
	scanFrom := len(st.Remainder)
	buf, owned := chunk, false
	if scanFrom > 0 {
		buf, owned = append(st.Remainder, chunk...), true
	}
	st.Remainder = nil

	for len(buf) > 0 {
		if st.Stage == StageFrameData {
			buf = st.fillPartial(buf, &out)
			continue
		}

		idx := bytes.IndexByte(buf[scanFrom:], Terminator)
		if idx < 0 {
			if err := st.checkPending(buf); err != nil {
				return st.closed(), out, &ParseError{Offset: st.Consumed, Err: err}
			}
			if !owned {
				buf = bytes.Clone(buf)
			}
			st.Remainder = buf
			break
		}
		idx += scanFrom
		scanFrom = 0

		var err error
		lineStart := st.Consumed
		switch st.Stage {
		case StageHeader:
			buf, err = st.readHeader(buf, idx, &out)
		case StageFrame:
			buf, err = st.readFrame(buf, idx, &out)
		}
		if err != nil {
			return st.closed(), out, &ParseError{Offset: lineStart, Err: err}
		}
	}
	return st, out, nil
}

// Finish signals the end of input. It fails with ErrTruncated when the
// header was never completed or a frame is incomplete. Unterminated bytes
// after the last complete frame are dropped.
func Finish(st State) (State, error) {
	var err error
	switch {
	case st.Stage == StageClosed:
		return st, ErrClosed
	case st.Stage == StageHeader:
		err = fmt.Errorf("%w: no header", ErrTruncated)
	case st.Stage == StageFrameData:
		err = fmt.Errorf("%w: %d payload bytes missing", ErrTruncated, st.DataNeeded)
	}
	if err != nil {
		return st.closed(), &ParseError{Offset: st.Consumed, Err: err}
	}
	return st.closed(), nil
}

// Abort closes st without checking for truncation, releasing any partial
// frame and held over bytes.
func Abort(st State) State {
	return st.closed()
}

func (st *State) readHeader(buf []byte, idx int, out *Output) ([]byte, error) {
	line := buf[:idx]
	if !bytes.HasPrefix(line, Signature) {
		return nil, ErrSignature
	}
	if err := st.checkLineSize(len(line)); err != nil {
		return nil, err
	}

	hdr, err := goy4m.ParseHeader(string(line[len(Signature):]))
	if err != nil {
		return nil, err
	}
	if frameSize := hdr.ColourSpace().FrameSize(); st.MaxFrameSize > 0 && frameSize > st.MaxFrameSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, frameSize, st.MaxFrameSize)
	}

	st.Header = &hdr
	emitted := hdr
	out.Header = &emitted
	st.Stage = StageFrame
	st.Consumed += int64(idx + 1)
	return buf[idx+1:], nil
}

func (st *State) readFrame(buf []byte, idx int, out *Output) ([]byte, error) {
	line := buf[:idx]
	if !bytes.HasPrefix(line, FrameMagic) {
		return nil, ErrFrameSignature
	}
	if err := st.checkLineSize(len(line)); err != nil {
		return nil, err
	}

	var params []byte
	if len(line) > len(FrameMagic) {
		params = bytes.Clone(line[len(FrameMagic):])
	}
	st.Consumed += int64(idx + 1)

	frameSize := st.Header.ColourSpace().FrameSize()
	rest := buf[idx+1:]
	if len(rest) >= frameSize {
		out.Frames = append(out.Frames, goy4m.Frame{
			Data:          bytes.Clone(rest[:frameSize]),
			RawParameters: params,
		})
		st.Consumed += int64(frameSize)
		return rest[frameSize:], nil
	}

	data := make([]byte, frameSize)
	n := copy(data, rest)
	st.Partial = &goy4m.Frame{Data: data, RawParameters: params}
	st.Offset = n
	st.DataNeeded = frameSize - n
	st.Stage = StageFrameData
	st.Consumed += int64(n)
	return nil, nil
}

func (st *State) fillPartial(buf []byte, out *Output) []byte {
	n := copy(st.Partial.Data[st.Offset:], buf)
	st.Offset += n
	st.DataNeeded -= n
	st.Consumed += int64(n)
	if st.DataNeeded > 0 {
		return buf[n:]
	}

	out.Frames = append(out.Frames, *st.Partial)
	st.Partial = nil
	st.Offset = 0
	st.DataNeeded = 0
	st.Stage = StageFrame
	return buf[n:]
}

// checkPending rejects an unterminated line early when it can no longer
// become valid.
func (st *State) checkPending(buf []byte) error {
	magic, mismatch := Signature, ErrSignature
	if st.Stage == StageFrame {
		magic, mismatch = FrameMagic, ErrFrameSignature
	}
	n := min(len(buf), len(magic))
	if !bytes.Equal(buf[:n], magic[:n]) {
		return mismatch
	}
	return st.checkLineSize(len(buf))
}

func (st *State) checkLineSize(n int) error {
	if st.MaxLineSize > 0 && n > st.MaxLineSize {
		return fmt.Errorf("%w: %d > %d", ErrLineTooLong, n, st.MaxLineSize)
	}
	return nil
}
