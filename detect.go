package autobq

import (
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/xerrors"
)

// Detector guesses the character encoding of raw object bytes.
type Detector interface {
	Detect(data []byte) (encoding.Encoding, error)
}

type chardetDetector struct {
	detector *chardet.Detector
}

func newChardetDetector() Detector {
	return &chardetDetector{detector: chardet.NewTextDetector()}
}

// Detect runs the statistical charset detector over data and resolves the
// winning label to a decoder. An indeterminate guess, or a label without a
// registered decoder, is reported as ErrUnknownEncoding instead of being
// left to fail mid-decode later.
func (d *chardetDetector) Detect(data []byte) (encoding.Encoding, error) {
	result, err := d.detector.DetectBest(data)
	if err != nil {
		return nil, xerrors.Errorf("chardet gave no usable guess: %w", ErrUnknownEncoding)
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return nil, xerrors.Errorf("no decoder for charset %q: %w", result.Charset, ErrUnknownEncoding)
	}

	return enc, nil
}

// sampleSize bounds how many leading bytes feed the detector. chardet's
// accuracy plateaus well below this.
const sampleSize = 64 * 1024
