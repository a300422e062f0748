package autobq

import (
	"context"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/functions/metadata"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/xerrors"
)

// Pipeline reacts to Cloud Storage finalize events: it infers a STRING
// schema from the uploaded file's header row, provisions a matching
// BigQuery table and bulk loads the object into it.
type Pipeline interface {
	Handle(context.Context, Event) error
}

var defaultPattern = regexp.MustCompile(`\.csv$`)

// New builds a Pipeline bound to cfg. GCP clients are created here unless
// the options replace the collaborators.
func New(ctx context.Context, cfg Config, opts ...Option) (Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:         cfg,
		pattern:     defaultPattern,
		logLevel:    "info",
		concurrency: 1,
	}

	for _, o := range opts {
		if err := o.apply(p); err != nil {
			return nil, err
		}
	}

	logger, err := newLogger(p.logLevel, p.prettyLogging)
	if err != nil {
		return nil, err
	}
	p.logger = logger
	p.sem = semaphore.NewWeighted(p.concurrency)

	if p.detector == nil {
		p.detector = newChardetDetector()
	}

	if p.extractor == nil {
		if p.extractor, err = newGCSExtractor(ctx); err != nil {
			return nil, err
		}
	}

	if p.provisioner == nil || p.loader == nil {
		bq, err := bigquery.NewClient(ctx, cfg.Project)
		if err != nil {
			return nil, xerrors.Errorf("failed to build bigquery client: %w", err)
		}

		dataset := bq.Dataset(cfg.Dataset)
		if p.provisioner == nil {
			p.provisioner = newBQProvisioner(dataset)
		}
		if p.loader == nil {
			p.loader = newBQLoader(dataset)
		}
	}

	return p, nil
}

// MustNew is New or panic, for package-level init in function code.
func MustNew(ctx context.Context, cfg Config, opts ...Option) Pipeline {
	p, err := New(ctx, cfg, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

type pipeline struct {
	cfg      Config
	pattern  *regexp.Regexp
	parser   Parser
	encoding encoding.Encoding

	detector    Detector
	extractor   extractor
	provisioner provisioner
	loader      loader
	notifier    Notifier

	logger        zerolog.Logger
	prettyLogging bool
	logLevel      string

	concurrency int64
	sem         *semaphore.Weighted
	locks       sync.Map // table ID -> *sync.Mutex
}

// Handle runs the full pipeline for one event. Any stage failure aborts the
// remaining stages and is returned to the platform; a table created before
// a failed load is left in place (the truncate load makes redelivery
// converge). Same-table invocations are serialized within this instance
// only; cross-instance serialization needs an external lease.
func (p *pipeline) Handle(ctx context.Context, e Event) error {
	ctx = p.logger.WithContext(ctx)
	ctx = withStartedTime(ctx)

	l := log.Ctx(ctx).With().Str("bucket", e.Bucket).Str("object", e.Name).Logger()
	if md, err := metadata.FromContext(ctx); err == nil {
		l = l.With().Str("event_id", md.EventID).Logger()
	}
	ctx = l.WithContext(ctx)

	l.Info().Msg("pipeline started")

	err := p.process(ctx, e)
	p.notify(ctx, e, err)

	if err != nil {
		l.Error().Msgf("pipeline failed: %v", err)
		return err
	}

	l.Info().Msg("pipeline finished")

	return nil
}

func (p *pipeline) process(ctx context.Context, e Event) error {
	if e.Bucket != p.cfg.Bucket {
		return xerrors.Errorf("event for bucket %q, watching %q: %w", e.Bucket, p.cfg.Bucket, ErrObjectNotMatched)
	}

	if !p.pattern.MatchString(e.Name) {
		return xerrors.Errorf("object %q does not match %q: %w", e.Name, p.pattern, ErrObjectNotMatched)
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return xerrors.Errorf("failed to acquire invocation slot: %w", err)
	}
	defer p.sem.Release(1)

	tableID := e.TableID()
	unlock := p.lockTable(tableID)
	defer unlock()

	path, cleanup, err := p.extractor.extract(ctx, e)
	if err != nil {
		return xerrors.Errorf("failed to stage object: %w", err)
	}
	defer cleanup()

	if p.parser != nil {
		return p.loadStreamed(ctx, p.parser, tableID, path, p.encoding)
	}

	sample, err := readSample(path)
	if err != nil {
		return err
	}
	if len(sample) == 0 {
		return xerrors.Errorf("%s: %w", e.FullPath(), ErrEmptyObject)
	}

	enc := p.encoding
	if enc == nil {
		if enc, err = p.detector.Detect(sample); err != nil {
			return err
		}
	}

	if bqEnc, ok := nativeEncoding(enc); ok {
		return p.loadByReference(ctx, e, tableID, path, enc, bqEnc)
	}

	// BigQuery cannot read this charset by reference; decode locally and
	// stream the rows instead.
	return p.loadStreamed(ctx, CSVParser(), tableID, path, enc)
}

func (p *pipeline) loadByReference(ctx context.Context, e Event, tableID, path string,
	enc encoding.Encoding, bqEnc bigquery.Encoding) error {
	header, err := extractHeader(path, enc)
	if err != nil {
		return err
	}

	if err := p.provisioner.provision(ctx, tableID, BuildSchema(header)); err != nil {
		return err
	}

	return p.loader.loadURI(ctx, e.FullPath(), tableID, bqEnc)
}

func (p *pipeline) loadStreamed(ctx context.Context, parser Parser, tableID, path string,
	enc encoding.Encoding) error {
	f, err := os.Open(path)
	if err != nil {
		return xerrors.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	records, err := parser(ctx, r)
	if err != nil {
		return xerrors.Errorf("failed to parse staged file: %w", err)
	}

	if len(records) == 0 {
		return xerrors.Errorf("no header row: %w", ErrEmptyObject)
	}

	if err := p.provisioner.provision(ctx, tableID, BuildSchema(records[0])); err != nil {
		return err
	}

	return p.loader.loadRecords(ctx, tableID, records[1:])
}

func (p *pipeline) lockTable(tableID string) func() {
	v, _ := p.locks.LoadOrStore(tableID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

func (p *pipeline) notify(ctx context.Context, e Event, err error) {
	if p.notifier == nil {
		return
	}

	r := &Result{Event: e, TableID: e.TableID(), Error: err}
	if t, ok := startedTimeFrom(ctx); ok {
		r.Elapsed = time.Since(t)
	}

	if nerr := p.notifier.Notify(ctx, r); nerr != nil {
		log.Ctx(ctx).Error().Msgf("failed to notify result: %v", nerr)
	}
}

// nativeEncoding reports the bigquery.Encoding for charsets its CSV load
// jobs read directly. Everything else goes through the streamed path.
func nativeEncoding(enc encoding.Encoding) (bigquery.Encoding, bool) {
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", false
	}

	switch name {
	case "utf-8":
		return bigquery.UTF_8, true
	case "windows-1252":
		// chardet labels Latin-1 text ISO-8859-1, which htmlindex
		// canonicalizes to windows-1252.
		return bigquery.ISO_8859_1, true
	}

	return "", false
}

func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()

	sample, err := io.ReadAll(io.LimitReader(f, sampleSize))
	if err != nil {
		return nil, xerrors.Errorf("failed to read staged file: %w", err)
	}

	return sample, nil
}
