package autobq

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
)

type fakeTable struct {
	createErr error
	metadata  *bigquery.TableMetadata
	metaErr   error

	created *bigquery.TableMetadata
}

func (f *fakeTable) Create(_ context.Context, md *bigquery.TableMetadata) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.created = md

	return nil
}

func (f *fakeTable) Metadata(_ context.Context, _ ...bigquery.TableMetadataOption) (*bigquery.TableMetadata, error) {
	return f.metadata, f.metaErr
}

func newFakeProvisioner(ft *fakeTable) provisioner {
	return &bqProvisioner{tables: func(string) table { return ft }}
}

func testCtx() context.Context {
	nop := zerolog.Nop()
	return nop.WithContext(context.Background())
}

func TestProvision_CreatesTable(t *testing.T) {
	ft := &fakeTable{}
	p := newFakeProvisioner(ft)

	schema := BuildSchema([]string{"Name", "E-Mail"})

	if err := p.provision(testCtx(), "contacts", schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ft.created == nil {
		t.Fatal("Create was not called")
	}

	if !schemaEqual(ft.created.Schema, schema) {
		t.Errorf("created schema = %v, want %v", ft.created.Schema, schema)
	}
}

func TestProvision_ExistingMatchingSchema(t *testing.T) {
	schema := BuildSchema([]string{"Name", "E-Mail"})

	ft := &fakeTable{
		createErr: &googleapi.Error{Code: http.StatusConflict},
		metadata:  &bigquery.TableMetadata{Schema: schema},
	}

	if err := newFakeProvisioner(ft).provision(testCtx(), "contacts", schema); err != nil {
		t.Errorf("matching existing table should be a no-op, got %v", err)
	}
}

func TestProvision_ExistingConflictingSchema(t *testing.T) {
	ft := &fakeTable{
		createErr: &googleapi.Error{Code: http.StatusConflict},
		metadata:  &bigquery.TableMetadata{Schema: BuildSchema([]string{"Other"})},
	}

	err := newFakeProvisioner(ft).provision(testCtx(), "contacts", BuildSchema([]string{"Name"}))
	if !errors.Is(err, ErrTableConflict) {
		t.Errorf("conflicting schema should yield ErrTableConflict, got %v", err)
	}
}

func TestProvision_OtherCreateError(t *testing.T) {
	ft := &fakeTable{createErr: &googleapi.Error{Code: http.StatusForbidden}}

	err := newFakeProvisioner(ft).provision(testCtx(), "contacts", BuildSchema([]string{"Name"}))
	if err == nil {
		t.Fatal("expected error")
	}

	if errors.Is(err, ErrTableConflict) {
		t.Errorf("non-conflict failure should not be ErrTableConflict: %v", err)
	}
}

func TestProvision_MetadataError(t *testing.T) {
	ft := &fakeTable{
		createErr: &googleapi.Error{Code: http.StatusConflict},
		metaErr:   errors.New("metadata unavailable"),
	}

	if err := newFakeProvisioner(ft).provision(testCtx(), "contacts", BuildSchema([]string{"Name"})); err == nil {
		t.Error("expected error when metadata of existing table cannot be read")
	}
}
