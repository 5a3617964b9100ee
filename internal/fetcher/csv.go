package fetcher

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	// Delimiter is the field separator. Zero sniffs ',' or ';' from the
	// first line.
	Delimiter  rune
	LazyQuotes bool
}

// Table is a parsed sheet: the header line and the data records after it.
// Records may be shorter or longer than the header.
type Table struct {
	Header  []string
	Records [][]string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sniffDelimiter picks ';' when the first line holds more semicolons than
// commas, which is how French spreadsheet tools export CSV.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		line = peek[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// StreamCSV reads CSV records and sends them to a channel. Both channels
// are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		br := bufio.NewReader(r)
		if peek, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(peek, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}

		reader := csv.NewReader(br)
		reader.Comma = opts.Delimiter
		if reader.Comma == 0 {
			reader.Comma = sniffDelimiter(br)
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV parses a whole CSV body. The first record is the header; fully
// blank records are dropped.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) (Table, error) {
	rowCh, errCh := StreamCSV(ctx, r, opts)

	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return Table{}, err
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) Table {
	var t Table
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		t.Records = append(t.Records, row)
	}
	return t
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
