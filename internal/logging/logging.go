// Package logging configures the process logger. gnark and this module share
// one zerolog logger writing to stderr.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// New returns a console logger at level and installs it as gnark's global
// logger.
func New(level zerolog.Level) zerolog.Logger {
	return NewWithWriter(os.Stderr, level)
}

func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	logger.Set(l)
	return l
}
