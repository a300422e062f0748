package autobq

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/extrame/xls"
	"gitlab.com/osaki-lab/iowrapper"
	"golang.org/x/xerrors"
)

// Parser decodes a staged object into records. The first record is the
// header row; the rest are data.
type Parser func(context.Context, io.Reader) ([][]string, error)

var errNoSheet = errors.New("workbook has no sheet")

// CSVParser returns a Parser for delimited text files.
func CSVParser() Parser {
	return func(_ context.Context, r io.Reader) ([][]string, error) {
		return csv.NewReader(r).ReadAll()
	}
}

// XLSParser returns a Parser for legacy Excel workbooks. Only the first
// sheet is read. Rows are padded to the sheet's widest row so the record
// shape stays rectangular.
func XLSParser() Parser {
	// xls.WorkSheet.Row panics on rows absent from the sheet.
	getRow := func(sheet *xls.WorkSheet, i int) (row *xls.Row) {
		defer func() { recover() }()
		return sheet.Row(i)
	}

	return func(_ context.Context, r io.Reader) ([][]string, error) {
		wb, err := xls.OpenReader(iowrapper.NewSeeker(r), "utf-8")
		if err != nil {
			return nil, xerrors.Errorf("failed to open xls workbook: %w", err)
		}

		sheet := wb.GetSheet(0)
		if sheet == nil {
			return nil, errNoSheet
		}

		records := [][]string{}
		width := 0

		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := getRow(sheet, i)
			if row == nil {
				continue
			}

			record := []string{}
			for col := row.FirstCol(); col < row.LastCol(); col++ {
				record = append(record, row.Col(col))
			}

			if len(record) > width {
				width = len(record)
			}

			records = append(records, record)
		}

		for i, record := range records {
			for len(record) < width {
				record = append(record, "")
			}
			records[i] = record
		}

		return records, nil
	}
}
