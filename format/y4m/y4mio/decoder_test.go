package y4mio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/goy4m"
)

func TestDecoder_Claire(t *testing.T) {
	t.Parallel()

	res, err := decodeChunks([][]byte{claireStream()})
	require.NoError(t, err)

	want := mustHeader(t, goy4m.HeaderOptions{
		Width:       176,
		Height:      144,
		FrameRate:   goy4m.NewRatio(6000, 1001),
		Interlacing: goy4m.Progressive,
		AspectRatio: goy4m.NewRatio(128, 117),
		ColourSpace: goy4m.CMono,
	})
	require.Len(t, res.headers, 1)
	require.Equal(t, want, res.headers[0])

	require.Len(t, res.frames, claireFrames)
	for _, frame := range res.frames {
		require.Len(t, frame.Data, want.ColourSpace().FrameSize())
		require.Nil(t, frame.RawParameters)
	}
}

func TestDecoder_Sample(t *testing.T) {
	t.Parallel()

	res, err := decodeChunks([][]byte{sampleStream(t)})
	require.NoError(t, err)

	require.Len(t, res.headers, 1)
	hdr := res.headers[0]
	require.Equal(t, uint(2), hdr.Width())
	require.Equal(t, uint(2), hdr.Height())
	require.Equal(t, goy4m.C444, hdr.ColourSpace().Name())
	require.Equal(t, 2*2*3, hdr.ColourSpace().FrameSize())

	require.Len(t, res.frames, sampleFrames)
	for _, frame := range res.frames {
		require.Equal(t, bytes.Repeat([]byte{128}, 12), frame.Data)
		require.Equal(t, []byte(sampleParams), frame.RawParameters)
	}
}

func TestDecoder_HeaderBeforeFrames(t *testing.T) {
	t.Parallel()

	dec := NewDecoder()
	_, ok := dec.Header()
	require.False(t, ok)

	out, err := dec.Feed(sampleStream(t))
	require.NoError(t, err)
	require.NotNil(t, out.Header)
	require.Len(t, out.Frames, sampleFrames)
	require.Equal(t, uint64(sampleFrames), dec.Frames())

	hdr, ok := dec.Header()
	require.True(t, ok)
	require.Equal(t, *out.Header, hdr)

	// the header is reported once
	out, err = dec.Feed([]byte("FRAME\n"))
	require.NoError(t, err)
	require.Nil(t, out.Header)
	require.Empty(t, out.Frames)
	require.Equal(t, StageFrameData, dec.State().Stage)
	require.Equal(t, 12, dec.State().DataNeeded)
}

func TestDecoder_HeaderOnly(t *testing.T) {
	t.Parallel()

	res, err := decodeChunks([][]byte{[]byte("YUV4MPEG2 W4 H4 F30:1\n")})
	require.NoError(t, err)
	require.Len(t, res.headers, 1)
	require.Empty(t, res.frames)
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	const hdr = "YUV4MPEG2 W2 H2 F25:1 C444\n"
	payload := string(bytes.Repeat([]byte{1}, 12))

	tests := []struct {
		name  string
		input string
		opts  []Option
		want  error
	}{
		{name: "empty", input: "", want: ErrTruncated},
		{name: "bad_signature", input: "YUV4MPEG3 W2 H2 F25:1\n", want: ErrSignature},
		{name: "bad_signature_unterminated", input: "RIFF\x00\x00\x00\x00WAVE", want: ErrSignature},
		{name: "too_few_fields", input: "YUV4MPEG2 W2 H2\n", want: goy4m.ErrHeaderFields},
		{name: "missing_frame_rate", input: "YUV4MPEG2 W2 H2 Ip\n", want: goy4m.ErrHeaderMissing},
		{name: "unknown_colour_space", input: "YUV4MPEG2 W2 H2 F25:1 C555\n", want: goy4m.ErrUnknownColourSpace},
		{name: "header_unterminated", input: "YUV4MPEG2 W2 H2 F25:1", want: ErrTruncated},
		{name: "bad_frame_signature", input: hdr + "FRAMX\n" + payload, want: ErrFrameSignature},
		{name: "bad_frame_signature_unterminated", input: hdr + "GARBAGE", want: ErrFrameSignature},
		{name: "short_frame_line", input: hdr + "FRA\n", want: ErrFrameSignature},
		{name: "payload_truncated", input: hdr + "FRAME\n" + payload[:5], want: ErrTruncated},
		{name: "payload_missing", input: hdr + "FRAME\n", want: ErrTruncated},
		{name: "second_payload_truncated", input: hdr + "FRAME\n" + payload + "FRAME\n" + payload[:11], want: ErrTruncated},
		{name: "frame_too_large", input: hdr, opts: []Option{WithMaxFrameSize(11)}, want: ErrFrameTooLarge},
		{name: "header_line_too_long", input: hdr, opts: []Option{WithMaxLineSize(16)}, want: ErrLineTooLong},
		{name: "frame_line_too_long", input: hdr + "FRAMEXaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n" + payload, opts: []Option{WithMaxLineSize(len(hdr))}, want: ErrLineTooLong},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := decodeChunks([][]byte{[]byte(tt.input)}, tt.opts...)
			require.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestDecoder_Limits(t *testing.T) {
	t.Parallel()

	data := sampleStream(t)

	res, err := decodeChunks([][]byte{data}, WithMaxFrameSize(12))
	require.NoError(t, err)
	require.Len(t, res.frames, sampleFrames)

	res, err = decodeChunks([][]byte{data}, WithMaxFrameSize(-1))
	require.NoError(t, err)
	require.Len(t, res.frames, sampleFrames)

	res, err = decodeChunks([][]byte{data}, WithMaxFrameSize(11))
	require.ErrorIs(t, err, ErrFrameTooLarge)
	require.Empty(t, res.headers)
	require.Empty(t, res.frames)
}

func TestDecoder_ErrorOffset(t *testing.T) {
	t.Parallel()

	data := sampleStream(t)
	frameLen := len("FRAME"+sampleParams+"\n") + 12
	headerLen := len(data) - sampleFrames*frameLen

	broken := bytes.Clone(data)
	broken[headerLen+2*frameLen+4] = 'X'

	res, err := decodeChunks(splitEvery(broken, 1))
	require.ErrorIs(t, err, ErrFrameSignature)
	require.Len(t, res.frames, 2)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, int64(headerLen+2*frameLen), perr.Offset)
}

func TestDecoder_ErrorLatches(t *testing.T) {
	t.Parallel()

	dec := NewDecoder()
	_, err := dec.Feed([]byte("NOTY4M\n"))
	require.ErrorIs(t, err, ErrSignature)

	_, err = dec.Feed(sampleStream(t))
	require.ErrorIs(t, err, ErrSignature)
	require.ErrorIs(t, dec.Close(), ErrSignature)
	require.Equal(t, StageClosed, dec.State().Stage)
}

func TestDecoder_TrailingBytesDropped(t *testing.T) {
	t.Parallel()

	for name, input := range map[string]string{
		"after_frame":  "YUV4MPEG2 W1 H1 F1:1 Cmono\nFRAME\nxFRA",
		"after_header": "YUV4MPEG2 W1 H1 F1:1 Cmono\nFRAME",
	} {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dec := NewDecoder()
			out, err := dec.Feed([]byte(input))
			require.NoError(t, err)
			require.NotNil(t, out.Header)
			require.NotEmpty(t, dec.State().Remainder)

			require.NoError(t, dec.Close())
			require.Equal(t, StageClosed, dec.State().Stage)
			require.Empty(t, dec.State().Remainder)
		})
	}

	res, err := decodeChunks(splitEvery([]byte("YUV4MPEG2 W1 H1 F1:1 Cmono\nFRAME\nxFRA"), 1))
	require.NoError(t, err)
	require.Len(t, res.frames, 1)
	require.Equal(t, []byte("x"), res.frames[0].Data)
}

func TestDecoder_CloseTwice(t *testing.T) {
	t.Parallel()

	dec := NewDecoder()
	_, err := dec.Feed(sampleStream(t))
	require.NoError(t, err)
	require.NoError(t, dec.Close())
	require.NoError(t, dec.Close())

	_, err = dec.Feed([]byte("FRAME\n"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestDecoder_Abort(t *testing.T) {
	t.Parallel()

	data := sampleStream(t)

	dec := NewDecoder()
	_, err := dec.Feed(data[:len(data)-5])
	require.NoError(t, err)
	require.NotNil(t, dec.State().Partial)

	dec.Abort()
	st := dec.State()
	require.Equal(t, StageClosed, st.Stage)
	require.Nil(t, st.Partial)
	require.Nil(t, st.Remainder)
	require.Zero(t, st.DataNeeded)
	require.Zero(t, st.Offset)

	_, err = dec.Feed(data[len(data)-5:])
	require.True(t, errors.Is(err, ErrClosed))
	require.NoError(t, dec.Close())
}

func TestDecoder_ReusedChunkBuffer(t *testing.T) {
	t.Parallel()

	data := sampleStream(t)
	want, err := decodeChunks([][]byte{data})
	require.NoError(t, err)

	// the same scratch buffer is refilled for every chunk, as io.Reader loops do
	dec := NewDecoder()
	scratch := make([]byte, 7)
	var frames []goy4m.Frame
	for rest := data; len(rest) > 0; {
		n := copy(scratch, rest)
		rest = rest[n:]
		out, ferr := dec.Feed(scratch[:n])
		require.NoError(t, ferr)
		frames = append(frames, out.Frames...)
		for i := range scratch {
			scratch[i] = 0xEE
		}
	}
	require.NoError(t, dec.Close())
	require.Equal(t, want.frames, frames)
}
