package goy4m

// Interlacing is the value of the I header field.
type Interlacing string

// Interlacing modes.
const (
	Progressive      Interlacing = "p"
	TopFieldFirst    Interlacing = "t"
	BottomFieldFirst Interlacing = "b"
	MixedModes       Interlacing = "m"
)

// IsValid reports whether i is one of the four defined modes.
func (i Interlacing) IsValid() bool {
	switch i {
	case Progressive, TopFieldFirst, BottomFieldFirst, MixedModes:
		return true
	default:
		return false
	}
}

func (i Interlacing) String() string {
	return string(i)
}
