package y4m

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ugparu/goy4m"
	"github.com/ugparu/goy4m/format/y4m/y4mio"
	"github.com/ugparu/goy4m/utils/buffer"
	"github.com/ugparu/goy4m/utils/logger"
)

// Demuxer pulls chunks from an io.Reader and feeds them to a y4mio.Decoder.
// Frames decoded from one chunk are queued and handed out one at a time.
type Demuxer struct {
	r       io.Reader
	file    *os.File
	name    string
	decOpts []y4mio.Option

	chunkSize int
	buf       buffer.PooledBuffer
	dec       *y4mio.Decoder

	pending []goy4m.Frame
	eof     bool
	err     error
}

// NewDemuxer returns a demuxer reading from r. The reader is not closed by
// Close.
func NewDemuxer(r io.Reader, opts ...Option) *Demuxer {
	dmx := &Demuxer{
		r:         r,
		name:      "stream",
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(dmx)
	}
	dmx.dec = y4mio.NewDecoder(dmx.decOpts...)
	dmx.buf = buffer.Get(dmx.chunkSize)
	return dmx
}

// Open opens the file at path for demuxing. The file is closed by Close.
func Open(path string, opts ...Option) (dmx *Demuxer, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	dmx = NewDemuxer(f, opts...)
	dmx.file = f
	dmx.name = filepath.Base(path)
	return
}

// Demux reads until the stream header is decoded and returns it.
func (dmx *Demuxer) Demux() (hdr goy4m.Header, err error) {
	for {
		var ok bool
		if hdr, ok = dmx.dec.Header(); ok {
			return
		}
		if dmx.err != nil {
			err = dmx.err
			return
		}
		if dmx.eof {
			err = io.ErrUnexpectedEOF
			return
		}
		dmx.fill()
	}
}

// ReadFrame returns the next frame, or io.EOF once the stream ended cleanly.
// Frames decoded before a failure are returned before the error.
func (dmx *Demuxer) ReadFrame() (f goy4m.Frame, err error) {
	for len(dmx.pending) == 0 {
		if dmx.err != nil {
			err = dmx.err
			return
		}
		if dmx.eof {
			err = io.EOF
			return
		}
		dmx.fill()
	}

	f = dmx.pending[0]
	dmx.pending[0] = goy4m.Frame{}
	dmx.pending = dmx.pending[1:]
	return
}

// fill reads one chunk and decodes it. Errors are latched in dmx.err.
func (dmx *Demuxer) fill() {
	if dmx.buf == nil {
		dmx.err = y4mio.ErrClosed
		return
	}

	n, rerr := dmx.r.Read(dmx.buf.Data())
	if n > 0 {
		out, err := dmx.dec.Feed(dmx.buf.Data()[:n])
		if out.Header != nil {
			logger.Infof(dmx, "Stream header: %s", out.Header)
			dmx.growBuffer(out.Header.ColourSpace().FrameSize())
		}
		dmx.pending = append(dmx.pending, out.Frames...)
		if err != nil {
			logger.Errorf(dmx, "Failed to decode stream: %s", err.Error())
			dmx.err = err
			return
		}
	}

	switch {
	case rerr == nil:
	case errors.Is(rerr, io.EOF):
		if err := dmx.dec.Close(); err != nil {
			logger.Errorf(dmx, "Stream ended unexpectedly: %s", err.Error())
			dmx.err = err
			return
		}
		logger.Debugf(dmx, "End of stream after %d frames", dmx.dec.Frames())
		dmx.eof = true
	default:
		logger.Errorf(dmx, "Failed to read stream: %s", rerr.Error())
		dmx.err = fmt.Errorf("y4m: read: %w", rerr)
	}
}

// growBuffer sizes the read buffer so that one read usually completes a
// frame. The frame has been copied out of the buffer by the time it grows.
func (dmx *Demuxer) growBuffer(frameSize int) {
	size := max(dmx.chunkSize, min(len(y4mio.FrameMagic)+1+frameSize, maxFrameReadSize))
	if size <= dmx.buf.Len() {
		return
	}
	logger.Debugf(dmx, "Growing read buffer from %d to %d bytes", dmx.buf.Len(), size)
	dmx.buf.Grow(size)
}

// Frames returns the number of frames decoded so far.
func (dmx *Demuxer) Frames() uint64 {
	return dmx.dec.Frames()
}

// Close stops decoding and releases the read buffer. Frames still queued are
// dropped.
func (dmx *Demuxer) Close() {
	if dmx.buf == nil {
		return
	}
	logger.Debug(dmx, "Closing demuxer")

	dmx.dec.Abort()
	dmx.buf.Release()
	dmx.buf = nil
	dmx.pending = nil
	if dmx.file != nil {
		if err := dmx.file.Close(); err != nil {
			logger.Warningf(dmx, "Failed to close file: %s", err.Error())
		}
	}
}

func (dmx *Demuxer) String() string {
	return fmt.Sprintf("Y4M_DMX %s", dmx.name)
}
