package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var salesRows = []string{
	"Name,Score,Joined,Note",
	"alice,10,2024-01-02,first",
	"bob,11.5,2024-01-03,second",
	"carol,,2024-01-04,",
	"dave,9,bad-date,fourth",
}

func writeCSV(t *testing.T, name string, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSVKindsAndCounts(t *testing.T) {
	tbl, err := LoadCSV(writeCSV(t, "sales.csv", salesRows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Rows() != 4 || tbl.Cols() != 4 {
		t.Fatalf("got %dx%d, want 4x4", tbl.Rows(), tbl.Cols())
	}
	if tbl.Source != "sales.csv" {
		t.Fatalf("source = %q", tbl.Source)
	}
	wantKinds := []Kind{Textual, Numeric, Other, Textual}
	for i, k := range wantKinds {
		if tbl.Columns[i].Kind != k {
			t.Errorf("column %s kind = %s, want %s", tbl.Columns[i].Name, tbl.Columns[i].Kind, k)
		}
	}
	if got := tbl.Columns[1].Missing(); got != 1 {
		t.Errorf("Score missing = %d, want 1", got)
	}
	if got := tbl.Columns[3].Missing(); got != 1 {
		t.Errorf("Note missing = %d, want 1", got)
	}
	vals := tbl.Columns[1].Values()
	if len(vals) != 3 || vals[0] != 10 || vals[1] != 11.5 || vals[2] != 9 {
		t.Errorf("Score values = %v", vals)
	}
	// Joined has 3 date cells and 1 textual stray
	if got := tbl.Columns[2].NonConforming(); got != 1 {
		t.Errorf("Joined non-conforming = %d, want 1", got)
	}
}

func TestLoadCSVPadsShortRows(t *testing.T) {
	rows := []string{"A,B,C", "1,2,3", "4,5"}
	tbl, err := LoadCSV(writeCSV(t, "short.csv", rows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := tbl.Columns[2].Cells[1]; got != "" {
		t.Fatalf("padded cell = %q, want empty", got)
	}
	if got := tbl.Columns[2].Missing(); got != 1 {
		t.Fatalf("C missing = %d, want 1", got)
	}
}

func TestLoadCSVTypeTieGoesNumeric(t *testing.T) {
	rows := []string{"Mixed", "1", "2", "x", "y"}
	tbl, err := LoadCSV(writeCSV(t, "mixed.csv", rows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Columns[0].Kind != Numeric {
		t.Fatalf("tie kind = %s, want numeric", tbl.Columns[0].Kind)
	}
	if got := tbl.Columns[0].NonConforming(); got != 2 {
		t.Fatalf("non-conforming = %d, want 2", got)
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	tbl, err := LoadCSV(writeCSV(t, "empty.csv", []string{"A,B"}), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Rows() != 0 || tbl.Cols() != 2 {
		t.Fatalf("got %dx%d, want 0x2", tbl.Rows(), tbl.Cols())
	}
	if len(tbl.NumericColumns()) != 0 {
		t.Fatal("header-only table should have no numeric columns")
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestLoadCSVMalformed(t *testing.T) {
	rows := []string{"A,B", `"unterminated,1`}
	_, err := LoadCSV(writeCSV(t, "bad.csv", rows), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestLoadTSVSniffsTab(t *testing.T) {
	rows := []string{"A\tB", "1\tx", "2\ty"}
	tbl, err := LoadCSV(writeCSV(t, "data.tsv", rows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if tbl.Cols() != 2 || tbl.Columns[0].Kind != Numeric {
		t.Fatalf("tsv not sniffed: cols=%d kind=%s", tbl.Cols(), tbl.Columns[0].Kind)
	}
}

func TestFirstNumericFollowsColumnOrder(t *testing.T) {
	rows := []string{"Label,First,Second", "a,1,10", "b,2,20"}
	tbl, err := LoadCSV(writeCSV(t, "order.csv", rows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	nums := tbl.NumericColumns()
	if len(nums) != 2 || nums[0].Name != "First" || nums[1].Name != "Second" {
		t.Fatalf("numeric columns out of order: %v", names(nums))
	}
	first, ok := tbl.FirstNumeric()
	if !ok || first.Name != "First" {
		t.Fatalf("FirstNumeric = %v, %v", first, ok)
	}
}

func TestHead(t *testing.T) {
	tbl, err := LoadCSV(writeCSV(t, "sales.csv", salesRows), Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	head := tbl.Head(10)
	if len(head) != 4 {
		t.Fatalf("head rows = %d, want 4", len(head))
	}
	if head[0][0] != "alice" || head[3][3] != "fourth" {
		t.Fatalf("head content wrong: %v", head)
	}
	if got := len(tbl.Head(2)); got != 2 {
		t.Fatalf("head(2) rows = %d", got)
	}
}

func names(cols []*Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}
