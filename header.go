package goy4m

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldSeparator separates header fields.
const FieldSeparator = " "

const (
	minHeaderFields     = 3
	illegalCommentChars = " \n"
	unknownAspect       = "0:0" // The only zero ratio a header may carry.
)

// Header field prefixes.
const (
	fieldWidth       = 'W'
	fieldHeight      = 'H'
	fieldFrameRate   = 'F'
	fieldInterlacing = 'I'
	fieldAspect      = 'A'
	fieldColourSpace = 'C'
	fieldComment     = 'X'
)

// HeaderOptions carries the values a Header is built from. Zero values of
// the optional fields select the defaults: progressive interlacing, the 0:0
// aspect ratio and the C420 colour space.
type HeaderOptions struct {
	Width       uint
	Height      uint
	FrameRate   Ratio
	Interlacing Interlacing
	AspectRatio Ratio
	ColourSpace string
	Comment     string // Must not contain spaces or 0x0A.
}

// Header is the validated, immutable stream header.
type Header struct {
	width       uint
	height      uint
	frameRate   Ratio
	interlacing Interlacing
	aspectRatio Ratio
	colourSpace ColourSpace
	comment     string
}

// NewHeader applies the defaults and validates opts. Checks run in order:
// required fields, aspect ratio, interlacing, comment, colour space.
func NewHeader(opts HeaderOptions) (hdr Header, err error) {
	if opts.Interlacing == "" {
		opts.Interlacing = Progressive
	}
	if opts.ColourSpace == "" {
		opts.ColourSpace = C420
	}

	if opts.Width == 0 || opts.Height == 0 || opts.FrameRate.IsZero() {
		err = ErrHeaderMissing
		return
	}
	// 0:0 means unknown, otherwise both parts are positive
	if (opts.AspectRatio.Num == 0) != (opts.AspectRatio.Den == 0) {
		err = fmt.Errorf("%w: aspect %s", ErrRatioValue, opts.AspectRatio)
		return
	}
	if !opts.Interlacing.IsValid() {
		err = fmt.Errorf("%w: %q", ErrInterlacing, opts.Interlacing)
		return
	}
	if strings.ContainsAny(opts.Comment, illegalCommentChars) {
		err = fmt.Errorf("%w: %q", ErrCommentIllegal, opts.Comment)
		return
	}

	if hdr.colourSpace, err = newColourSpace(opts.ColourSpace, uint64(opts.Width), uint64(opts.Height)); err != nil {
		return
	}

	hdr.width = opts.Width
	hdr.height = opts.Height
	hdr.frameRate = opts.FrameRate
	hdr.interlacing = opts.Interlacing
	hdr.aspectRatio = opts.AspectRatio
	hdr.comment = opts.Comment
	return
}

// ParseHeader parses the space separated fields that follow the stream
// signature. Unknown field prefixes and empty fields are ignored, and a
// repeated field overrides the earlier one.
func ParseHeader(fields string) (hdr Header, err error) {
	params := strings.Split(fields, FieldSeparator)
	if len(params) < minHeaderFields {
		err = fmt.Errorf("%w: got %d", ErrHeaderFields, len(params))
		return
	}

	var opts HeaderOptions
	for _, param := range params {
		if param == "" {
			continue
		}
		v := param[1:]
		switch param[0] {
		case fieldWidth:
			opts.Width, _ = parseUint(v)
		case fieldHeight:
			opts.Height, _ = parseUint(v)
		case fieldFrameRate:
			if opts.FrameRate, err = ParseRatio(v); err != nil {
				return
			}
		case fieldInterlacing:
			opts.Interlacing = Interlacing(v)
		case fieldAspect:
			if v == unknownAspect {
				opts.AspectRatio = Ratio{}
			} else if opts.AspectRatio, err = ParseRatio(v); err != nil {
				return
			}
		case fieldColourSpace:
			opts.ColourSpace = param
		case fieldComment:
			opts.Comment = v
		}
	}
	return NewHeader(opts)
}

func (hdr Header) Width() uint {
	return hdr.width
}

func (hdr Header) Height() uint {
	return hdr.height
}

func (hdr Header) FrameRate() Ratio {
	return hdr.frameRate
}

func (hdr Header) Interlacing() Interlacing {
	return hdr.interlacing
}

// AspectRatio returns the pixel aspect ratio; 0:0 when unknown.
func (hdr Header) AspectRatio() Ratio {
	return hdr.aspectRatio
}

func (hdr Header) ColourSpace() ColourSpace {
	return hdr.colourSpace
}

// Comment returns the X field, or an empty string when there is none.
func (hdr Header) Comment() string {
	return hdr.comment
}

// Options returns the values hdr was built from.
func (hdr Header) Options() HeaderOptions {
	return HeaderOptions{
		Width:       hdr.width,
		Height:      hdr.height,
		FrameRate:   hdr.frameRate,
		Interlacing: hdr.interlacing,
		AspectRatio: hdr.aspectRatio,
		ColourSpace: hdr.colourSpace.name,
		Comment:     hdr.comment,
	}
}

// Validate reports whether hdr would be accepted by NewHeader. The zero
// Header is invalid.
func (hdr Header) Validate() error {
	_, err := NewHeader(hdr.Options())
	return err
}

// String returns the canonical header text, without the stream signature and
// the line terminator.
func (hdr Header) String() string {
	var sb strings.Builder
	sb.WriteByte(fieldWidth)
	sb.WriteString(strconv.FormatUint(uint64(hdr.width), 10))
	sb.WriteString(FieldSeparator)
	sb.WriteByte(fieldHeight)
	sb.WriteString(strconv.FormatUint(uint64(hdr.height), 10))
	sb.WriteString(FieldSeparator)
	sb.WriteByte(fieldFrameRate)
	sb.WriteString(hdr.frameRate.String())
	sb.WriteString(FieldSeparator)
	sb.WriteByte(fieldInterlacing)
	sb.WriteString(string(hdr.interlacing))
	sb.WriteString(FieldSeparator)
	sb.WriteByte(fieldAspect)
	sb.WriteString(hdr.aspectRatio.String())
	sb.WriteString(FieldSeparator)
	sb.WriteString(hdr.colourSpace.name)
	if hdr.comment != "" {
		sb.WriteString(FieldSeparator)
		sb.WriteByte(fieldComment)
		sb.WriteString(hdr.comment)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler with the canonical form.
func (hdr Header) MarshalText() ([]byte, error) {
	if err := hdr.Validate(); err != nil {
		return nil, err
	}
	return []byte(hdr.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (hdr *Header) UnmarshalText(text []byte) (err error) {
	*hdr, err = ParseHeader(string(text))
	return
}
