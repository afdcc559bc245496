package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type named string

func (n named) String() string { return string(n) }

func TestObjToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obj  any
		want string
	}{
		{name: "nil", obj: nil, want: "NIL"},
		{name: "stringer", obj: named("Y4M_DMX a.y4m"), want: "Y4M_DMX a.y4m"},
		{name: "string", obj: "READER", want: "READER"},
		{name: "other", obj: 42, want: "int"},
		{name: "truncated", obj: "Y4M_DMX a-very-long-file-name.y4m", want: "Y4M_DMX a-very-long-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, objToString(tt.obj))
		})
	}
}

func TestLevels(t *testing.T) { //nolint:paralleltest // mutates the global logger
	var buf bytes.Buffer
	out, lvl := logrus.StandardLogger().Out, logrus.GetLevel()
	defer func() {
		logrus.SetOutput(out)
		logrus.SetLevel(lvl)
	}()

	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.InfoLevel)

	Debugf("DEC", "hidden %d", 1)
	require.Zero(t, buf.Len())

	Infof("DEC", "shown %d", 2)
	require.Contains(t, buf.String(), "shown 2")
	require.Contains(t, buf.String(), "obj=DEC")
}
