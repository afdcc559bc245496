// Package logger routes component logs through logrus. Every call names the
// component it comes from; any value with a String method can be used.
package logger

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

const objWidth = 20

type stringer interface {
	String() string
}

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).String()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

// Init sets the global level and the text formatter.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
}

func log(lvl logrus.Level, object any, message string) {
	if !logrus.IsLevelEnabled(lvl) {
		return
	}
	logrus.WithField("obj", objToString(object)).Log(lvl, message)
}

func logf(lvl logrus.Level, object any, message string, args ...any) {
	if !logrus.IsLevelEnabled(lvl) {
		return
	}
	logrus.WithField("obj", objToString(object)).Log(lvl, fmt.Sprintf(message, args...))
}

func Trace(object any, message string) {
	log(logrus.TraceLevel, object, message)
}

func Tracef(object any, message string, args ...any) {
	logf(logrus.TraceLevel, object, message, args...)
}

func Debug(object any, message string) {
	log(logrus.DebugLevel, object, message)
}

func Debugf(object any, message string, args ...any) {
	logf(logrus.DebugLevel, object, message, args...)
}

func Info(object any, message string) {
	log(logrus.InfoLevel, object, message)
}

func Infof(object any, message string, args ...any) {
	logf(logrus.InfoLevel, object, message, args...)
}

func Warning(object any, message string) {
	log(logrus.WarnLevel, object, message)
}

func Warningf(object any, message string, args ...any) {
	logf(logrus.WarnLevel, object, message, args...)
}

func Error(object any, message string) {
	log(logrus.ErrorLevel, object, message)
}

func Errorf(object any, message string, args ...any) {
	logf(logrus.ErrorLevel, object, message, args...)
}

func Fatal(object any, message string) {
	logrus.WithField("obj", objToString(object)).Fatal(message)
}

func Fatalf(object any, message string, args ...any) {
	logrus.WithField("obj", objToString(object)).Fatalf(message, args...)
}
