// README: Component loggers built on zerolog.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the given component. APP_ENV=dev selects
// the human-readable console writer; everything else logs JSON to stdout.
func New(component string) zerolog.Logger {
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
