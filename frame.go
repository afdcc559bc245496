package goy4m

import "bytes"

// Frame is one video frame: the pixel payload and the optional raw
// parameters that followed the FRAME marker.
type Frame struct {
	Data          []byte // Exactly ColourSpace.FrameSize bytes for the stream header.
	RawParameters []byte // Verbatim bytes after the marker, nil when there were none.
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	return Frame{Data: bytes.Clone(f.Data), RawParameters: bytes.Clone(f.RawParameters)}
}

// Planes splits the payload into Y, U and V according to cs.
func (f Frame) Planes(cs ColourSpace) (y, u, v []byte, err error) {
	return cs.Planes(f.Data)
}
