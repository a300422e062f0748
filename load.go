package autobq

import (
	"bytes"
	"context"
	"encoding/csv"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// loader runs BigQuery load jobs against the destination dataset. Both
// paths skip the header (by configuration or by slicing), truncate existing
// rows and block until the job reaches a terminal status. Retry semantics
// are the job's own; none are layered on top.
type loader interface {
	// loadURI points BigQuery at the object's storage URI directly.
	loadURI(ctx context.Context, sourceURI, tableID string, enc bigquery.Encoding) error

	// loadRecords streams already-parsed data rows through a reader source,
	// for sources BigQuery cannot read by reference.
	loadRecords(ctx context.Context, tableID string, records [][]string) error
}

type bqLoader struct {
	dataset *bigquery.Dataset
}

func newBQLoader(dataset *bigquery.Dataset) loader {
	return &bqLoader{dataset: dataset}
}

func (l *bqLoader) loadURI(ctx context.Context, sourceURI, tableID string, enc bigquery.Encoding) error {
	src := bigquery.NewGCSReference(sourceURI)
	src.SourceFormat = bigquery.CSV
	src.SkipLeadingRows = 1
	src.Encoding = enc

	if err := l.run(ctx, tableID, src); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Msgf("loaded %s into table %s", sourceURI, tableID)

	return nil
}

func (l *bqLoader) loadRecords(ctx context.Context, tableID string, records [][]string) error {
	buf := &bytes.Buffer{}
	if err := csv.NewWriter(buf).WriteAll(records); err != nil {
		return xerrors.Errorf("failed to encode records: %w", err)
	}

	src := bigquery.NewReaderSource(buf)
	src.SourceFormat = bigquery.CSV

	if err := l.run(ctx, tableID, src); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Msgf("loaded %d rows into table %s", len(records), tableID)

	return nil
}

func (l *bqLoader) run(ctx context.Context, tableID string, src bigquery.LoadSource) error {
	ldr := l.dataset.Table(tableID).LoaderFrom(src)
	ldr.WriteDisposition = bigquery.WriteTruncate

	job, err := ldr.Run(ctx)
	if err != nil {
		return xerrors.Errorf("failed to start load job for table %s: %w", tableID, err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return xerrors.Errorf("failed to wait for load job %s: %w", job.ID(), err)
	}

	if err := status.Err(); err != nil {
		log.Ctx(ctx).Error().Msgf("load job %s failed: %v", job.ID(), status.Errors)
		return xerrors.Errorf("load job %s for table %s: %w", job.ID(), tableID, err)
	}

	return nil
}
