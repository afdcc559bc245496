// Package y4m drains a frame channel into a muxer on its own goroutine.
package y4m

import (
	"github.com/ugparu/goy4m"
	"github.com/ugparu/goy4m/utils/lifecycle"
	"github.com/ugparu/goy4m/utils/logger"
)

type flusher interface {
	Flush() error
}

// y4mWriter is an internal structure implementing the goy4m.Writer interface.
type y4mWriter struct {
	lifecycle.AsyncManager[*y4mWriter]
	mux      goy4m.Muxer
	header   goy4m.Header
	inpFrmCh chan goy4m.Frame
	frameCnt uint64
	name     string
}

// New returns a writer muxing hdr and then every frame sent on Frames. The
// muxer is closed by Close.
func New(mux goy4m.Muxer, hdr goy4m.Header, chanSize int) goy4m.Writer {
	wr := &y4mWriter{
		AsyncManager: nil,
		mux:          mux,
		header:       hdr,
		inpFrmCh:     make(chan goy4m.Frame, chanSize),
		frameCnt:     0,
		name:         "Y4M_WRITER",
	}
	wr.AsyncManager = lifecycle.NewAsyncManager(wr)
	return wr
}

// Write writes the stream header and starts draining Frames. A header error
// is reported by Err and closes Done right away.
func (wr *y4mWriter) Write() {
	startFunc := func(wr *y4mWriter) error {
		return wr.mux.Mux(wr.header)
	}
	if err := wr.Start(startFunc); err != nil {
		logger.Errorf(wr, "Failed to start writer: %s", err.Error())
	}
}

// Step writes one frame. Closing the input channel ends the stream.
func (wr *y4mWriter) Step(stopCh <-chan struct{}) (err error) {
	select {
	case <-stopCh:
		return &lifecycle.BreakError{}
	case frame, ok := <-wr.inpFrmCh:
		if !ok {
			logger.Infof(wr, "Input closed after %d frames", wr.frameCnt)
			if f, ok := wr.mux.(flusher); ok {
				if err = f.Flush(); err != nil {
					return
				}
			}
			return &lifecycle.BreakError{}
		}
		if err = wr.mux.WriteFrame(frame); err != nil {
			logger.Errorf(wr, "Failed to write frame %d: %s", wr.frameCnt, err.Error())
			return
		}
		wr.frameCnt++
	}
	return
}

// Close_ closes the muxer.
func (wr *y4mWriter) Close_() { //nolint: revive
	logger.Infof(wr, "Closing writer")
	wr.mux.Close()
}

// Frames returns the input channel. Producers must also watch Done, since the
// writer stops reading after an error.
func (wr *y4mWriter) Frames() chan<- goy4m.Frame {
	return wr.inpFrmCh
}

func (wr *y4mWriter) String() string {
	return wr.name
}
