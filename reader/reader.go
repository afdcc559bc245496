// Package reader runs a demuxer on its own goroutine and publishes the
// stream header and frames on channels.
package reader

import (
	"errors"
	"io"
	"sync"

	"github.com/ugparu/goy4m"
	"github.com/ugparu/goy4m/utils/lifecycle"
	"github.com/ugparu/goy4m/utils/logger"
)

// reader is an internal structure implementing the goy4m.Reader interface.
type reader struct {
	lifecycle.AsyncManager[*reader] // Embedding an AsyncManager for asynchronous operations.
	dmx                             goy4m.Demuxer
	header                          chan goy4m.Header
	frames                          chan goy4m.Frame
	demuxed                         bool
	frameCnt                        uint64
	finishOnce                      sync.Once
	name                            string
}

// New returns a reader pulling from dmx. Frames are buffered up to chanSize.
// The demuxer is closed by Close.
func New(dmx goy4m.Demuxer, chanSize int) goy4m.Reader {
	rdr := &reader{
		AsyncManager: nil,
		dmx:          dmx,
		header:       make(chan goy4m.Header, 1),
		frames:       make(chan goy4m.Frame, chanSize),
		demuxed:      false,
		frameCnt:     0,
		finishOnce:   sync.Once{},
		name:         "READER",
	}

	rdr.AsyncManager = lifecycle.NewAsyncManager(rdr)
	return rdr
}

// Step demuxes the header on the first call and one frame on every later
// call.
func (rdr *reader) Step(stopCh <-chan struct{}) (err error) {
	select {
	case <-stopCh:
		return &lifecycle.BreakError{}
	default:
	}

	if !rdr.demuxed {
		var hdr goy4m.Header
		if hdr, err = rdr.dmx.Demux(); err != nil {
			logger.Errorf(rdr, "Failed to demux header: %s", err.Error())
			rdr.finish()
			return
		}
		logger.Infof(rdr, "Stream started: %s", hdr)
		rdr.demuxed = true
		rdr.header <- hdr
		close(rdr.header)
		return
	}

	logger.Trace(rdr, "Trying to read new frame")

	var frame goy4m.Frame
	if frame, err = rdr.dmx.ReadFrame(); err != nil {
		rdr.finish()
		if errors.Is(err, io.EOF) {
			logger.Infof(rdr, "Stream finished after %d frames", rdr.frameCnt)
			return &lifecycle.BreakError{}
		}
		logger.Errorf(rdr, "Failed to read frame %d: %s", rdr.frameCnt, err.Error())
		return
	}

	select {
	case rdr.frames <- frame:
		rdr.frameCnt++
	case <-stopCh:
		return &lifecycle.BreakError{}
	}
	return
}

// finish closes the output channels. It runs on the reading goroutine, or
// from Close_ once that goroutine has exited.
func (rdr *reader) finish() {
	rdr.finishOnce.Do(func() {
		if !rdr.demuxed {
			close(rdr.header)
		}
		close(rdr.frames)
	})
}

// Read starts reading in the background.
func (rdr *reader) Read() {
	startFunc := func(*reader) error {
		return nil
	}
	_ = rdr.Start(startFunc)
}

// Close_ closes the demuxer and the output channels.
func (rdr *reader) Close_() { //nolint: revive
	logger.Infof(rdr, "Closing reader")
	rdr.finish()
	rdr.dmx.Close()
}

// Header delivers the stream header once. It is closed without a value when
// the header cannot be read.
func (rdr *reader) Header() <-chan goy4m.Header {
	return rdr.header
}

// Frames returns the channel of decoded frames. It is closed at the end of
// the stream, on error and on Close.
func (rdr *reader) Frames() <-chan goy4m.Frame {
	return rdr.frames
}

// String returns a string representation of the reader.
func (rdr *reader) String() string {
	return rdr.name
}
