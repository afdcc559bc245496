package goy4m

import (
	"fmt"
	"math"
	"math/bits"
)

// Colour space names as they appear in the C header field.
const (
	CMono     = "Cmono"
	C420      = "C420"
	C420jpeg  = "C420jpeg"
	C420paldv = "C420paldv"
	C420mpeg2 = "C420mpeg2"
	C420p10   = "C420p10"
	C420p12   = "C420p12"
	C411      = "C411"
	C422      = "C422"
	C422jpeg  = "C422jpeg"
	C422p10   = "C422p10"
	C422p12   = "C422p12"
	C444      = "C444"
	C444p10   = "C444p10"
	C444p12   = "C444p12"
)

const planeCount = 3

// chroma plane samples per luma sample, as an exact fraction
type chromaFactor struct {
	num, den uint64
}

type colourSpaceInfo struct {
	factor   chromaFactor
	bitDepth int
}

var (
	mono    = chromaFactor{0, 1}
	quarter = chromaFactor{1, 4}
	half    = chromaFactor{1, 2}
	full    = chromaFactor{1, 1}
)

var colourSpaceNames = []string{
	CMono,
	C420, C420jpeg, C420paldv, C420mpeg2, C420p10, C420p12, C411,
	C422, C422jpeg, C422p10, C422p12,
	C444, C444p10, C444p12,
}

var colourSpaceTable = map[string]colourSpaceInfo{
	CMono:     {mono, 8},
	C420:      {quarter, 8},
	C420jpeg:  {quarter, 8},
	C420paldv: {quarter, 8},
	C420mpeg2: {quarter, 8},
	C420p10:   {quarter, 16},
	C420p12:   {quarter, 16},
	C411:      {quarter, 8},
	C422:      {half, 8},
	C422jpeg:  {half, 8},
	C422p10:   {half, 16},
	C422p12:   {half, 16},
	C444:      {full, 8},
	C444p10:   {full, 16},
	C444p12:   {full, 16},
}

// ColourSpaceNames returns every supported colour space name.
func ColourSpaceNames() []string {
	return append([]string(nil), colourSpaceNames...)
}

// ColourSpace holds the byte layout of a frame derived from a colour space
// name and a pixel count.
type ColourSpace struct {
	name           string
	bitDepth       int
	bytesPerSample int
	planeSizes     [planeCount]int
	frameSize      int
}

// newColourSpace resolves name before checking the dimensions, so an unknown
// name is reported even when width*height overflows.
func newColourSpace(name string, width, height uint64) (cs ColourSpace, err error) {
	info, ok := colourSpaceTable[name]
	if !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownColourSpace, name)
		return
	}

	hi, pixels := bits.Mul64(width, height)
	if hi != 0 {
		err = fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
		return
	}
	bytesPerSample := info.bitDepth / 8 //nolint:mnd // bits per byte
	hi, luma := bits.Mul64(pixels, uint64(bytesPerSample))
	// the whole frame is at most three luma planes
	if hi != 0 || luma > math.MaxInt/planeCount {
		err = fmt.Errorf("%w: %d pixels in %s", ErrDimensions, pixels, name)
		return
	}
	chroma := (luma*info.factor.num + info.factor.den - 1) / info.factor.den

	cs.name = name
	cs.bitDepth = info.bitDepth
	cs.bytesPerSample = bytesPerSample
	cs.planeSizes = [planeCount]int{int(luma), int(chroma), int(chroma)}
	cs.frameSize = int(luma + 2*chroma)
	return
}

// Name returns the colour space name, including the leading C.
func (cs ColourSpace) Name() string {
	return cs.name
}

// BitDepth returns 16 for the p10/p12 colour spaces and 8 otherwise.
func (cs ColourSpace) BitDepth() int {
	return cs.bitDepth
}

func (cs ColourSpace) BytesPerSample() int {
	return cs.bytesPerSample
}

// PlaneSizes returns the Y, U and V plane sizes in bytes.
func (cs ColourSpace) PlaneSizes() [3]int {
	return cs.planeSizes
}

// FrameSize returns the payload size of one frame in bytes.
func (cs ColourSpace) FrameSize() int {
	return cs.frameSize
}

// Planes splits a frame payload into its Y, U and V planes. The returned
// slices share memory with data. Mono payloads yield empty chroma planes.
func (cs ColourSpace) Planes(data []byte) (y, u, v []byte, err error) {
	if len(data) != cs.frameSize {
		err = fmt.Errorf("%w: got %d bytes, want %d", ErrPlaneSize, len(data), cs.frameSize)
		return
	}
	uStart := cs.planeSizes[0]
	vStart := uStart + cs.planeSizes[1]
	return data[:uStart:uStart], data[uStart:vStart:vStart], data[vStart:], nil
}

func (cs ColourSpace) String() string {
	return cs.name
}
