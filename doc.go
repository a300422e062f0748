/*
Package autobq turns CSV uploads into queryable BigQuery tables.

It is a Cloud Functions pipeline for a Cloud Storage finalize trigger: for
each uploaded object it detects the file's character encoding, reads the
header row, provisions a table in a fixed dataset with one STRING column
per header field, and runs a load job that points BigQuery at the object's
gs:// URI with write-truncate semantics. The table ID is the object name
minus its extension.

Deploy it by registering Handle as a background function:

	package csvload

	import (
		"context"

		"go.autobq.dev/autobq"
	)

	var pipeline autobq.Pipeline

	func init() {
		pipeline = autobq.MustNew(
			context.Background(),
			autobq.ConfigFromEnv(),
			autobq.WithLogLevel("info"),
			autobq.WithConcurrency(4),
		)
	}

	// LoadCSV is the entrypoint for Cloud Functions.
	func LoadCSV(ctx context.Context, e autobq.Event) error {
		return pipeline.Handle(ctx, e)
	}

Objects whose detected charset BigQuery cannot read by reference are
decoded locally and streamed through a reader-source load instead. Legacy
Excel workbooks can be loaded the same way:

	autobq.MustNew(ctx, cfg,
		autobq.WithPattern(regexp.MustCompile(`\.xls$`)),
		autobq.WithParser(autobq.XLSParser()),
	)
*/
package autobq
