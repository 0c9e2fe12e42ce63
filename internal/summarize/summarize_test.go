package summarize

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mglanz/csvreport/internal/dataset"
)

func loadTable(t *testing.T, rows []string) *dataset.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	tbl, err := dataset.LoadCSV(path, dataset.Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	return tbl
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestSummarizeKnownStatistics(t *testing.T) {
	tbl := loadTable(t, []string{"V", "1", "2", "3", "4", "5"})
	sum := Summarize(tbl)
	if sum.Rows != 5 || sum.Cols != 1 {
		t.Fatalf("got %dx%d, want 5x1", sum.Rows, sum.Cols)
	}
	if len(sum.Numerics) != 1 {
		t.Fatalf("numerics = %d, want 1", len(sum.Numerics))
	}
	ns := sum.Numerics[0]
	approx(t, "mean", ns.Mean, 3)
	approx(t, "median", ns.Median, 3)
	approx(t, "min", ns.Min, 1)
	approx(t, "max", ns.Max, 5)
	// sample std-dev of 1..5 is sqrt(2.5)
	approx(t, "std", ns.StdDev, math.Sqrt(2.5))
	// median-exclusive quartiles
	approx(t, "q1", ns.Q1, 1.5)
	approx(t, "q3", ns.Q3, 4.5)
	if ns.Count != 5 {
		t.Errorf("count = %d, want 5", ns.Count)
	}
}

func TestSummarizeMissingCounts(t *testing.T) {
	tbl := loadTable(t, []string{
		"A,B",
		"1,x",
		",y",
		"3,",
		",",
	})
	sum := Summarize(tbl)
	if sum.Profiles[0].Missing != 2 || sum.Profiles[1].Missing != 2 {
		t.Fatalf("missing = %d/%d, want 2/2", sum.Profiles[0].Missing, sum.Profiles[1].Missing)
	}
	if sum.TotalMissing != 4 {
		t.Fatalf("total missing = %d, want 4", sum.TotalMissing)
	}
	// stats ignore missing cells
	ns, ok := sum.Numeric("A")
	if !ok || ns.Count != 2 {
		t.Fatalf("A count = %v/%v, want 2", ns.Count, ok)
	}
	approx(t, "A mean", ns.Mean, 2)
}

func TestSummarizeEmptyTable(t *testing.T) {
	tbl := loadTable(t, []string{"A,B"})
	sum := Summarize(tbl)
	if sum.Rows != 0 || sum.Cols != 2 {
		t.Fatalf("got %dx%d, want 0x2", sum.Rows, sum.Cols)
	}
	if len(sum.Numerics) != 0 {
		t.Fatalf("numerics = %d, want 0", len(sum.Numerics))
	}
	if sum.TotalMissing != 0 {
		t.Fatalf("total missing = %d, want 0", sum.TotalMissing)
	}
	if len(sum.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(sum.Profiles))
	}
}

func TestSummarizeEntirelyMissingColumn(t *testing.T) {
	tbl := loadTable(t, []string{"A,Empty", "1,", "2,"})
	sum := Summarize(tbl)
	if _, ok := sum.Numeric("Empty"); ok {
		t.Fatal("entirely-missing column must not get a numeric summary")
	}
	if len(sum.Numerics) != 1 {
		t.Fatalf("numerics = %d, want 1", len(sum.Numerics))
	}
}

func TestSummarizeMixedColumnIgnoresStrays(t *testing.T) {
	// predominant type is numeric; the stray text cell is excluded from stats
	tbl := loadTable(t, []string{"V", "1", "2", "3", "oops"})
	sum := Summarize(tbl)
	ns, ok := sum.Numeric("V")
	if !ok {
		t.Fatal("expected numeric summary for mixed column")
	}
	if ns.Count != 3 {
		t.Fatalf("count = %d, want 3", ns.Count)
	}
	approx(t, "mean", ns.Mean, 2)
	if sum.Profiles[0].NonConforming != 1 {
		t.Fatalf("non-conforming = %d, want 1", sum.Profiles[0].NonConforming)
	}
}

func TestSummarizeSingleValueColumn(t *testing.T) {
	tbl := loadTable(t, []string{"V", "7"})
	sum := Summarize(tbl)
	ns, ok := sum.Numeric("V")
	if !ok {
		t.Fatal("expected numeric summary")
	}
	approx(t, "std", ns.StdDev, 0)
	approx(t, "q1", ns.Q1, 7)
	approx(t, "q3", ns.Q3, 7)
}

func TestKindCountsOrder(t *testing.T) {
	tbl := loadTable(t, []string{
		"Num,Txt,Date",
		"1,a,2024-01-02",
		"2,b,2024-01-03",
	})
	sum := Summarize(tbl)
	kc := sum.KindCounts()
	if len(kc) != 3 {
		t.Fatalf("kind counts = %v", kc)
	}
	if kc[0].Kind != dataset.Numeric || kc[1].Kind != dataset.Textual || kc[2].Kind != dataset.Other {
		t.Fatalf("kind order = %v", kc)
	}
	for _, k := range kc {
		if k.Count != 1 {
			t.Fatalf("kind %s count = %d, want 1", k.Kind, k.Count)
		}
	}
}
