package y4mio

import (
	"io"

	"github.com/ugparu/goy4m"
)

// AppendHeader appends the stream signature, the canonical header and the
// terminator to dst.
func AppendHeader(dst []byte, hdr goy4m.Header) []byte {
	dst = append(dst, Signature...)
	dst = append(dst, hdr.String()...)
	return append(dst, Terminator)
}

// AppendFrameMarker appends the FRAME marker line of f to dst.
func AppendFrameMarker(dst []byte, f goy4m.Frame) []byte {
	dst = append(dst, FrameMagic...)
	dst = append(dst, f.RawParameters...)
	return append(dst, Terminator)
}

// AppendFrame appends the marker line and the payload of f to dst. The
// payload length is not checked against the header.
func AppendFrame(dst []byte, f goy4m.Frame) []byte {
	return append(AppendFrameMarker(dst, f), f.Data...)
}

// Encoder writes a y4m stream to an io.Writer. It keeps no state besides the
// header it was created with.
type Encoder struct {
	w      io.Writer
	header goy4m.Header
	marker []byte
}

// NewEncoder validates hdr and writes the header line to w right away.
func NewEncoder(w io.Writer, hdr goy4m.Header) (enc *Encoder, err error) {
	if err = hdr.Validate(); err != nil {
		return
	}
	if _, err = w.Write(AppendHeader(nil, hdr)); err != nil {
		return
	}
	return &Encoder{w: w, header: hdr}, nil
}

// Encode writes one frame: marker, raw parameters, terminator and payload.
func (enc *Encoder) Encode(f goy4m.Frame) (err error) {
	enc.marker = AppendFrameMarker(enc.marker[:0], f)
	if _, err = enc.w.Write(enc.marker); err != nil {
		return
	}
	_, err = enc.w.Write(f.Data)
	return
}

// Header returns the header the stream was opened with.
func (enc *Encoder) Header() goy4m.Header {
	return enc.header
}
