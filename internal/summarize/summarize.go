// Package summarize derives per-column profiles and descriptive statistics
// from a loaded table.
package summarize

import (
	"github.com/montanaflynn/stats"

	"github.com/mglanz/csvreport/internal/dataset"
)

// ColumnProfile is the per-column type and missing-value metadata.
type ColumnProfile struct {
	Name          string
	Kind          dataset.Kind
	Missing       int
	NonConforming int
}

// NumericSummary holds descriptive statistics for one numeric column,
// computed over parseable cells only. StdDev is the sample standard
// deviation (n-1); quartiles use the median-exclusive (Tukey) method,
// so [1,2,3,4,5] yields Q1=1.5, Q3=4.5.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Q1     float64
	Q3     float64
}

// KindCount pairs a column kind with the number of columns of that kind.
type KindCount struct {
	Kind  dataset.Kind
	Count int
}

// Summary is the derived view of one table.
type Summary struct {
	Rows         int
	Cols         int
	TotalMissing int
	Profiles     []ColumnProfile
	Numerics     []NumericSummary
}

// KindCounts returns column counts per kind in fixed order, omitting kinds
// with no columns.
func (s Summary) KindCounts() []KindCount {
	counts := map[dataset.Kind]int{}
	for _, p := range s.Profiles {
		counts[p.Kind]++
	}
	var out []KindCount
	for _, k := range []dataset.Kind{dataset.Numeric, dataset.Textual, dataset.Other} {
		if counts[k] > 0 {
			out = append(out, KindCount{Kind: k, Count: counts[k]})
		}
	}
	return out
}

// KindTotal returns the number of columns of the given kind.
func (s Summary) KindTotal(k dataset.Kind) int {
	n := 0
	for _, p := range s.Profiles {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Numeric looks up the summary for a column by name.
func (s Summary) Numeric(name string) (NumericSummary, bool) {
	for _, ns := range s.Numerics {
		if ns.Column == name {
			return ns, true
		}
	}
	return NumericSummary{}, false
}

// Summarize profiles every column and computes statistics for each numeric
// column with at least one parseable value. A zero-row table produces zero
// counts and no numeric summaries.
func Summarize(t *dataset.Table) Summary {
	s := Summary{Rows: t.Rows(), Cols: t.Cols()}
	for i := range t.Columns {
		c := &t.Columns[i]
		p := ColumnProfile{
			Name:          c.Name,
			Kind:          c.Kind,
			Missing:       c.Missing(),
			NonConforming: c.NonConforming(),
		}
		s.TotalMissing += p.Missing
		s.Profiles = append(s.Profiles, p)
	}
	for _, c := range t.NumericColumns() {
		if ns, ok := numericSummary(c); ok {
			s.Numerics = append(s.Numerics, ns)
		}
	}
	return s
}

func numericSummary(c *dataset.Column) (NumericSummary, bool) {
	vals := c.Values()
	if len(vals) == 0 {
		return NumericSummary{}, false
	}
	data := stats.Float64Data(vals)
	ns := NumericSummary{Column: c.Name, Count: len(vals)}
	ns.Mean, _ = stats.Mean(data)
	ns.Median, _ = stats.Median(data)
	ns.Min, _ = stats.Min(data)
	ns.Max, _ = stats.Max(data)
	if len(vals) > 1 {
		ns.StdDev, _ = stats.StandardDeviationSample(data)
	}
	if q, err := stats.Quartile(data); err == nil {
		ns.Q1 = q.Q1
		ns.Q3 = q.Q3
	} else {
		// single value: quartiles collapse onto it
		ns.Q1 = vals[0]
		ns.Q3 = vals[0]
	}
	return ns, true
}
