package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// bomReader strips a leading UTF-8 byte order mark, as written by
// spreadsheet exports, and decodes UTF-16 input that carries a BOM.
func bomReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// ReadCSV reads dictionary rows from CSV with a header line. Columns are
// matched by header name; unknown columns are ignored and missing ones
// read as empty. Short and long rows are accepted.
func ReadCSV(r io.Reader, source string) ([]record.Record, error) {
	cr := csv.NewReader(bomReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, NewSourceError(source, 1, "read header", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var out []record.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, NewSourceError(source, line, "read row", err)
		}

		line, _ := cr.FieldPos(0)
		raw := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}
		out = append(out, record.FromRaw(raw, record.Origin{File: source, Line: line}))
	}
	return out, nil
}
