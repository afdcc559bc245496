package y4mio

import (
	"fmt"

	"github.com/ugparu/goy4m"
)

// Stage is the decoder position within the stream grammar.
type Stage uint8

const (
	StageHeader    Stage = iota // Waiting for the header line.
	StageFrame                  // Waiting for a FRAME marker line.
	StageFrameData              // Filling the payload of Partial.
	StageClosed                 // End of input, error or abort.
)

func (s Stage) String() string {
	switch s {
	case StageHeader:
		return "HEADER"
	case StageFrame:
		return "FRAME"
	case StageFrameData:
		return "FRAME_DATA"
	case StageClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// State is everything the decoder carries from one chunk to the next. It
// holds plain data only and can be serialized, e.g. with encoding/json, and
// resumed later.
type State struct {
	Stage        Stage
	MaxFrameSize int // Ceiling on the header frame size, 0 for unbounded.
	MaxLineSize  int // Ceiling on a text line length, 0 for unbounded.

	Header *goy4m.Header `json:",omitempty"` // Set once the header line is decoded.

	Remainder  []byte       `json:",omitempty"` // Unterminated bytes held over from earlier chunks.
	DataNeeded int          // Payload bytes still missing from Partial.
	Partial    *goy4m.Frame `json:",omitempty"` // Frame whose payload is being filled.
	Offset     int          // Payload bytes of Partial already filled.

	Consumed int64 // Stream offset of the first byte not yet consumed.
}

// Option configures a new State.
type Option func(*State)

// WithMaxFrameSize rejects headers whose frame size exceeds n bytes.
// n <= 0 means unbounded.
func WithMaxFrameSize(n int) Option {
	return func(st *State) {
		st.MaxFrameSize = max(n, 0)
	}
}

// WithMaxLineSize rejects header and frame marker lines longer than n bytes,
// terminator excluded. n <= 0 means unbounded.
func WithMaxLineSize(n int) Option {
	return func(st *State) {
		st.MaxLineSize = max(n, 0)
	}
}

// NewState returns the initial decoder state.
func NewState(opts ...Option) State {
	st := State{Stage: StageHeader}
	for _, opt := range opts {
		opt(&st)
	}
	return st
}

// closed drops every buffer the state holds and marks it terminal. The
// configuration, the header and the stream offset are kept.
func (st *State) closed() State {
	return State{
		Stage:        StageClosed,
		MaxFrameSize: st.MaxFrameSize,
		MaxLineSize:  st.MaxLineSize,
		Header:       st.Header,
		Consumed:     st.Consumed,
	}
}

// validate rejects a state that Step could not have produced, such as one
// resumed from hand-edited JSON.
func (st *State) validate() error {
	switch st.Stage {
	case StageHeader:
		return nil
	case StageFrame:
		if st.Header == nil {
			return fmt.Errorf("%w: stage %s without header", ErrState, st.Stage)
		}
		return nil
	case StageFrameData:
		if st.Header == nil || st.Partial == nil {
			return fmt.Errorf("%w: stage %s without header or partial frame", ErrState, st.Stage)
		}
		if st.DataNeeded <= 0 || st.Offset < 0 || st.Offset+st.DataNeeded != len(st.Partial.Data) {
			return fmt.Errorf("%w: partial frame %d+%d of %d bytes", ErrState, st.Offset, st.DataNeeded, len(st.Partial.Data))
		}
		return nil
	default:
		return fmt.Errorf("%w: stage %s", ErrState, st.Stage)
	}
}
