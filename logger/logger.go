// Package logger holds the configurable root logger shared by the ratlp
// components, backed by github.com/rs/zerolog with a console writer.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var root zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	root = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		root = zerolog.Nop()
	}
}

// SetOutput changes the output of the root logger.
func SetOutput(w io.Writer) {
	root = root.Output(w)
}

// Set replaces the root logger.
func Set(l zerolog.Logger) {
	root = l
}

// Disable turns logging off.
func Disable() {
	root = zerolog.Nop()
}

// Logger returns a sublogger for a component.
func Logger(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}
