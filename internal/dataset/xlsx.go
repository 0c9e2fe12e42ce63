package dataset

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of a workbook into a Table. The first row
// names the columns, matching the CSV loader's contract.
func LoadXLSX(path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{Path: path}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Path: path, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("missing header row")}
	}
	return build(filepath.Base(path), rows[0], rows[1:]), nil
}
