package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stderr at info level.
func New() Logger {
	return NewWithWriter(os.Stderr, false)
}

// NewWithWriter returns a Logger writing to w. Debug messages are
// only written when debug is true.
func NewWithWriter(w io.Writer, debug bool) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	l.Formatter = &logrus.TextFormatter{
		DisableColors:  true,
		FullTimestamp:  true,
		DisableSorting: true,
		DisableQuote:   true,
	}
	return &logger{Logger: l}
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
