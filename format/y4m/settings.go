// Package y4m reads and writes YUV4MPEG2 streams over io.Reader and io.Writer,
// on top of the chunked decoder and the encoder of package y4mio.
package y4m

import "github.com/ugparu/goy4m/format/y4m/y4mio"

const (
	defaultChunkSize = 64 * 1024       // Bytes requested from the reader per call.
	maxFrameReadSize = 4 * 1024 * 1024 // Cap on growing the read buffer to a whole frame.
	writeBufSize     = 64 * 1024

	fileMode = 0o644
)

// Option configures a Demuxer.
type Option func(*Demuxer)

// WithChunkSize sets the read size. Once the header is decoded the read size
// grows to hold a whole frame, up to 4MB. Values below 1 keep the default.
func WithChunkSize(n int) Option {
	return func(dmx *Demuxer) {
		if n > 0 {
			dmx.chunkSize = n
		}
	}
}

// WithMaxFrameSize rejects streams whose frames are larger than n bytes.
func WithMaxFrameSize(n int) Option {
	return func(dmx *Demuxer) {
		dmx.decOpts = append(dmx.decOpts, y4mio.WithMaxFrameSize(n))
	}
}

// WithMaxLineSize rejects header and frame marker lines longer than n bytes.
func WithMaxLineSize(n int) Option {
	return func(dmx *Demuxer) {
		dmx.decOpts = append(dmx.decOpts, y4mio.WithMaxLineSize(n))
	}
}
