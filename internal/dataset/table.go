package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column by the predominant type of its non-missing cells.
// Ties go to numeric. A column with no non-missing cells is Other.
type Kind string

const (
	Numeric Kind = "numeric"
	Textual Kind = "textual"
	Other   Kind = "other"
)

// Column is one named column of raw cells plus its inferred kind.
type Column struct {
	Name  string
	Kind  Kind
	Cells []string

	values []float64
	parsed []bool
	numCnt int
	dtCnt  int
	txtCnt int
}

// Values returns the numeric values of all parseable cells, in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, c.numCnt)
	for i, ok := range c.parsed {
		if ok {
			out = append(out, c.values[i])
		}
	}
	return out
}

// Missing counts empty cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Cells {
		if v == "" {
			n++
		}
	}
	return n
}

// NonConforming counts non-missing cells that do not match the column's
// predominant type.
func (c *Column) NonConforming() int {
	nonNil := len(c.Cells) - c.Missing()
	switch c.Kind {
	case Numeric:
		return nonNil - c.numCnt
	case Textual:
		return nonNil - c.txtCnt
	default:
		return nonNil - c.dtCnt
	}
}

// Table is the immutable in-memory form of a loaded file: ordered named
// columns of raw string cells, row order preserved from the source.
type Table struct {
	Source  string
	Columns []Column
	rows    int
}

func (t *Table) Rows() int { return t.rows }
func (t *Table) Cols() int { return len(t.Columns) }

// ColumnNames returns all column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// NumericColumns returns, in table order, every numeric column that holds at
// least one parseable value. The summarizer and the histogram both derive the
// numeric set from here so report text and charts agree.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Kind == Numeric && c.numCnt > 0 {
			out = append(out, c)
		}
	}
	return out
}

// FirstNumeric returns the first numeric column with data, if any.
func (t *Table) FirstNumeric() (*Column, bool) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, false
	}
	return cols[0], true
}

// Head returns the first n rows as raw strings.
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j := range t.Columns {
			row[j] = t.Columns[j].Cells[i]
		}
		out[i] = row
	}
	return out
}

// build assembles a Table from a header and records. Short records are padded
// with empty cells; cells are trimmed before any parsing.
func build(source string, header []string, records [][]string) *Table {
	ncol := len(header)
	cols := make([]Column, ncol)
	for i, h := range header {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}
	for _, rec := range records {
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			c := &cols[j]
			c.Cells = append(c.Cells, v)
			if v == "" {
				c.values = append(c.values, 0)
				c.parsed = append(c.parsed, false)
				continue
			}
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				c.values = append(c.values, x)
				c.parsed = append(c.parsed, true)
				c.numCnt++
				continue
			}
			c.values = append(c.values, 0)
			c.parsed = append(c.parsed, false)
			if parseTimeMaybe(v) {
				c.dtCnt++
			} else {
				c.txtCnt++
			}
		}
	}
	for i := range cols {
		cols[i].Kind = inferKind(&cols[i])
	}
	return &Table{Source: source, Columns: cols, rows: len(records)}
}

func inferKind(c *Column) Kind {
	if c.numCnt >= c.txtCnt && c.numCnt >= c.dtCnt && c.numCnt > 0 {
		return Numeric
	}
	if c.txtCnt >= c.dtCnt && c.txtCnt > 0 {
		return Textual
	}
	return Other
}

func parseTimeMaybe(s string) bool {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}
