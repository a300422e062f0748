package autobq

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func writeStaged(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "staged")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestExtractHeader(t *testing.T) {
	path := writeStaged(t, []byte("Name,E-Mail,Zip Code\nalice,alice@example.com,12345\n"))

	header, err := extractHeader(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"Name", "E-Mail", "Zip Code"}; !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
}

func TestExtractHeader_Decodes(t *testing.T) {
	raw, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("利用日,金額\n"))
	if err != nil {
		t.Fatal(err)
	}

	path := writeStaged(t, raw)

	header, err := extractHeader(path, japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"利用日", "金額"}; !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
}

func TestExtractHeader_EmptyObject(t *testing.T) {
	path := writeStaged(t, nil)

	if _, err := extractHeader(path, nil); !errors.Is(err, ErrEmptyObject) {
		t.Errorf("empty file should yield ErrEmptyObject, got %v", err)
	}
}

func TestExtractHeader_DecodeMismatch(t *testing.T) {
	// EUC-JP bytes decoded as Shift_JIS are invalid sequences.
	raw, err := japanese.EUCJP.NewEncoder().Bytes([]byte("利用日,金額\n"))
	if err != nil {
		t.Fatal(err)
	}

	path := writeStaged(t, raw)

	header, err := extractHeader(path, japanese.ShiftJIS)
	if err == nil && reflect.DeepEqual(header, []string{"利用日", "金額"}) {
		t.Error("mis-detected encoding should not decode cleanly")
	}
}
