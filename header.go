package autobq

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/xerrors"
)

// extractHeader parses the first record of the staged delimited-text file
// as the column header list, decoding with enc when given.
//
// A file with no records is ErrEmptyObject rather than a raw EOF. A decode
// failure (mis-detected charset, corrupt bytes) surfaces as a wrapped parse
// error.
func extractHeader(path string, enc encoding.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open staged file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	header, err := csv.NewReader(r).Read()
	if errors.Is(err, io.EOF) {
		return nil, xerrors.Errorf("no header row: %w", ErrEmptyObject)
	}
	if err != nil {
		return nil, xerrors.Errorf("failed to parse header row: %w", err)
	}

	return header, nil
}
