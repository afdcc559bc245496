package y4m

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ugparu/goy4m"
	"github.com/ugparu/goy4m/format/y4m/y4mio"
	"github.com/ugparu/goy4m/utils/logger"
)

// Muxer writes a y4m stream through a buffered writer.
type Muxer struct {
	bufferedWriter *bufio.Writer
	file           *os.File
	name           string
	enc            *y4mio.Encoder
	frameSize      int
	frames         uint64
}

// NewMuxer returns a muxer writing to w. Call Flush or Close to push the
// buffered bytes out.
func NewMuxer(w io.Writer) *Muxer {
	return &Muxer{
		bufferedWriter: bufio.NewWriterSize(w, writeBufSize),
		name:           "stream",
	}
}

// Create creates or truncates the file at path and returns a muxer writing
// to it. The file is closed by Close.
func Create(path string) (mux *Muxer, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileMode)
	if err != nil {
		return
	}
	mux = NewMuxer(f)
	mux.file = f
	mux.name = filepath.Base(path)
	return
}

// Mux writes the stream header. It must be called once, before any frame.
func (mux *Muxer) Mux(hdr goy4m.Header) (err error) {
	if mux.enc != nil {
		return ErrAlreadyMuxed
	}
	if mux.enc, err = y4mio.NewEncoder(mux.bufferedWriter, hdr); err != nil {
		return
	}
	mux.frameSize = hdr.ColourSpace().FrameSize()
	logger.Infof(mux, "Stream header: %s", hdr)
	return
}

// WriteFrame writes one frame. The payload length must match the frame size
// of the header.
func (mux *Muxer) WriteFrame(f goy4m.Frame) (err error) {
	if mux.enc == nil {
		return ErrNotMuxed
	}
	if len(f.Data) != mux.frameSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(f.Data), mux.frameSize)
	}
	if err = mux.enc.Encode(f); err != nil {
		return
	}
	mux.frames++
	logger.Tracef(mux, "Frame %d written", mux.frames)
	return
}

// Flush writes any buffered data to the underlying writer.
func (mux *Muxer) Flush() error {
	return mux.bufferedWriter.Flush()
}

// Close flushes the stream and closes the file opened by Create.
func (mux *Muxer) Close() {
	if err := mux.Flush(); err != nil {
		logger.Errorf(mux, "Failed to flush stream: %s", err.Error())
	}
	logger.Debugf(mux, "Muxer closed after %d frames", mux.frames)
	if mux.file == nil {
		return
	}
	if err := mux.file.Close(); err != nil {
		logger.Warningf(mux, "Failed to close file: %s", err.Error())
	}
	mux.file = nil
}

func (mux *Muxer) String() string {
	return fmt.Sprintf("Y4M_MUX %s", mux.name)
}
