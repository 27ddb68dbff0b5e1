// Package util holds helpers shared by the cobslink command-line tools.
package util

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures console logging for one tool and installs it as the
// global logger.
func InitLogger(tool string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("tool", tool).Logger()
	log.Logger = logger
	return logger
}
