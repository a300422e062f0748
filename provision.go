package autobq

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
	"google.golang.org/api/googleapi"
)

// provisioner creates the destination table for a derived schema.
type provisioner interface {
	provision(ctx context.Context, tableID string, schema bigquery.Schema) error
}

// table is the slice of *bigquery.Table the provisioner needs.
type table interface {
	Create(context.Context, *bigquery.TableMetadata) error
	Metadata(context.Context, ...bigquery.TableMetadataOption) (*bigquery.TableMetadata, error)
}

type bqProvisioner struct {
	tables func(tableID string) table
}

func newBQProvisioner(dataset *bigquery.Dataset) provisioner {
	return &bqProvisioner{
		tables: func(tableID string) table { return dataset.Table(tableID) },
	}
}

// provision issues a synchronous create-table call. An already-exists
// conflict is tolerated when the live schema equals the derived one, so
// reprocessing the same object is safe; a conflicting schema is
// ErrTableConflict.
func (p *bqProvisioner) provision(ctx context.Context, tableID string, schema bigquery.Schema) error {
	l := log.Ctx(ctx)
	t := p.tables(tableID)

	err := t.Create(ctx, &bigquery.TableMetadata{Schema: schema})
	if err == nil {
		l.Info().Msgf("created table %s with %d columns", tableID, len(schema))
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusConflict {
		return xerrors.Errorf("failed to create table %s: %w", tableID, err)
	}

	md, err := t.Metadata(ctx)
	if err != nil {
		return xerrors.Errorf("failed to inspect existing table %s: %w", tableID, err)
	}

	if !schemaEqual(md.Schema, schema) {
		return xerrors.Errorf("table %s: %w", tableID, ErrTableConflict)
	}

	l.Info().Msgf("table %s already exists with a matching schema", tableID)

	return nil
}
