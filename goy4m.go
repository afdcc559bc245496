// Package goy4m defines the data model shared by the YUV4MPEG2 decoder and
// encoder (Ratio, ColourSpace, Header, Frame) and the interfaces implemented
// by the demuxers, muxers and async pipelines built on top of them.
package goy4m

// Demuxer defines the interface for extracting frames from a y4m stream.
type Demuxer interface {
	Demux() (Header, error)    // Decodes and returns the stream header.
	ReadFrame() (Frame, error) // Reads the next frame; io.EOF after a clean end of stream.
	Close()                    // Releases resources used by the demuxer.
}

// Muxer defines the interface for packaging frames into a y4m stream.
type Muxer interface {
	Mux(Header) error       // Writes the stream header.
	WriteFrame(Frame) error // Writes a frame to the stream.
	Close()                 // Finalizes the stream and releases resources.
}

// Reader defines the interface for asynchronous frame reading.
type Reader interface {
	Read()                 // Starts the reading process.
	Header() <-chan Header // Delivers the stream header once it is decoded.
	Frames() <-chan Frame  // Channel providing decoded frames, closed at end of stream.
	Done() <-chan struct{} // Channel signaling completion.
	Err() error            // Terminal error, valid once Done is closed.
	Close()                // Stops reading and releases resources.
}

// Writer defines the interface for asynchronous frame writing.
type Writer interface {
	Write()                // Starts the writing process.
	Frames() chan<- Frame  // Channel for frames to be written; close it to finish the stream.
	Done() <-chan struct{} // Channel signaling completion.
	Err() error            // Terminal error, valid once Done is closed.
	Close()                // Stops writing and releases resources.
}
