package autobq

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// extractor stages a storage object into an invocation-scoped local file.
// The returned cleanup removes the file and must run on every exit path.
type extractor interface {
	extract(ctx context.Context, e Event) (path string, cleanup func(), err error)
}

type gcsExtractor struct {
	storage *storage.Client
}

func newGCSExtractor(ctx context.Context) (extractor, error) {
	s, err := storage.NewClient(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to build storage client: %w", err)
	}

	return &gcsExtractor{storage: s}, nil
}

func (x *gcsExtractor) extract(ctx context.Context, e Event) (string, func(), error) {
	l := log.Ctx(ctx)

	r, err := x.storage.Bucket(e.Bucket).Object(e.Name).NewReader(ctx)
	if err != nil {
		return "", nil, xerrors.Errorf("failed to get reader of %s: %w", e.FullPath(), err)
	}
	defer r.Close()

	f, err := os.CreateTemp("", "autobq-*")
	if err != nil {
		return "", nil, xerrors.Errorf("failed to create staging file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		cleanup()
		return "", nil, xerrors.Errorf("failed to download %s: %w", e.FullPath(), err)
	}

	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, xerrors.Errorf("failed to flush staging copy of %s: %w", e.FullPath(), err)
	}

	l.Debug().Msgf("staged %s at %s", e.FullPath(), f.Name())

	return f.Name(), cleanup, nil
}
