package goy4m

import "errors"

// Construction errors. They are returned unwrapped or wrapped with %w, so
// callers should match them with errors.Is.
var (
	ErrRatioFormat        = errors.New("y4m: invalid ratio: invalid format")
	ErrRatioValue         = errors.New("y4m: invalid ratio: invalid numerator or denominator")
	ErrHeaderMissing      = errors.New("y4m: invalid header: missing or invalid required parameters")
	ErrHeaderFields       = errors.New("y4m: invalid header: too few fields")
	ErrInterlacing        = errors.New("y4m: invalid header: interlacing mode is invalid")
	ErrCommentIllegal     = errors.New("y4m: invalid header: comment contains illegal characters")
	ErrUnknownColourSpace = errors.New("y4m: invalid colour space: unknown name")
	ErrDimensions         = errors.New("y4m: invalid header: frame dimensions too large")
	ErrPlaneSize          = errors.New("y4m: frame data does not match colour space frame size")
)
