package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls loading behavior.
type Options struct {
	// Delimiter for CSV. If 0, inferred from the file extension
	// (tab for .tsv, comma otherwise).
	Delimiter rune
}

// Load reads a delimited tabular file into a Table, dispatching on extension.
// XLSX files go through the excelize loader; everything else is treated as
// delimited text with a header row.
func Load(path string, opt Options) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path, opt)
}

// LoadCSV parses a CSV/TSV file. The first row names the columns; short data
// rows are padded with empty cells.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(header) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Path: path, Err: fmt.Errorf("row %d: %w", len(records)+1, err)}
		}
		row := make([]string, len(rec))
		copy(row, rec)
		records = append(records, row)
	}
	return build(filepath.Base(path), header, records), nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
