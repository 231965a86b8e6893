// Package log provides the Logger used throughout the emulator.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Level is the minimum severity a Logger emits.
type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// New returns a Logger writing text lines to stderr.
func New(level Level) Logger {
	return NewWithOutput(os.Stderr, level)
}

// NewWithOutput returns a Logger writing text lines to w.
func NewWithOutput(w io.Writer, level Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		DisableSorting:  true,
		DisableQuote:    true,
		TimestampFormat: "15:04:05.000",
	}
	return l
}
