// Package y4mio implements the YUV4MPEG2 wire format: a resumable chunked
// decoder built around a pure Step function, and a stateless encoder.
package y4mio

// Terminator ends the header line and every frame marker line.
const Terminator = 0x0A

var (
	// Signature opens every stream.
	Signature = []byte("YUV4MPEG2 ")
	// FrameMagic introduces every frame.
	FrameMagic = []byte("FRAME")
)
