package autobq

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

func newLogger(level string, pretty bool) (zerolog.Logger, error) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, xerrors.Errorf("unknown log level %q: %w", level, err)
	}

	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(w).Level(lv).With().Timestamp().Logger(), nil
}
