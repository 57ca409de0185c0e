package tinyhttp

import (
	"io"
	"time"

	"github.com/indigo-web/tinyhttp/config"
	"github.com/rs/zerolog"
)

// NewLogger builds a logger out of the config. If the level can't be parsed, the logger
// is still usable and falls back to the info level.
func NewLogger(cfg config.Log, out io.Writer) (zerolog.Logger, error) {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger.Level(zerolog.InfoLevel), err
	}

	return logger.Level(level), nil
}
