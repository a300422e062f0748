package autobq

import (
	"regexp"

	"golang.org/x/text/encoding"
	"golang.org/x/xerrors"
)

// Option configures a Pipeline.
type Option interface {
	apply(*pipeline) error
}

type optionFunc func(*pipeline) error

func (f optionFunc) apply(p *pipeline) error {
	return f(p)
}

// WithPrettyLogging configures the pipeline to print human friendly logs.
func WithPrettyLogging() Option {
	return optionFunc(func(p *pipeline) error {
		p.prettyLogging = true
		return nil
	})
}

// WithLogLevel sets the log level: trace, debug, info, warn, error.
func WithLogLevel(level string) Option {
	return optionFunc(func(p *pipeline) error {
		p.logLevel = level
		return nil
	})
}

// WithConcurrency bounds how many invocations run the pipeline at once
// within this function instance.
func WithConcurrency(n int64) Option {
	return optionFunc(func(p *pipeline) error {
		if n < 1 {
			return xerrors.Errorf("concurrency must be positive, got %d", n)
		}
		p.concurrency = n
		return nil
	})
}

// WithPattern replaces the object-name filter. Events whose names do not
// match are rejected with ErrObjectNotMatched. The default accepts names
// ending in .csv.
func WithPattern(pattern *regexp.Regexp) Option {
	return optionFunc(func(p *pipeline) error {
		if pattern == nil {
			return xerrors.New("pattern must not be nil")
		}
		p.pattern = pattern
		return nil
	})
}

// WithNotifier registers a notifier that receives the Result of every
// invocation, success or failure.
func WithNotifier(n Notifier) Option {
	return optionFunc(func(p *pipeline) error {
		p.notifier = n
		return nil
	})
}

// WithDetector replaces the statistical charset detector.
func WithDetector(d Detector) Option {
	return optionFunc(func(p *pipeline) error {
		p.detector = d
		return nil
	})
}

// WithParser replaces record parsing, e.g. with XLSParser for workbook
// uploads. A pipeline with an explicit parser always loads through a
// streamed job and skips charset detection; combine with WithEncoding when
// the parser consumes decoded text.
func WithParser(parser Parser) Option {
	return optionFunc(func(p *pipeline) error {
		p.parser = parser
		return nil
	})
}

// WithEncoding fixes the source encoding instead of detecting it.
func WithEncoding(enc encoding.Encoding) Option {
	return optionFunc(func(p *pipeline) error {
		p.encoding = enc
		return nil
	})
}
