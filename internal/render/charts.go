// Package render produces the report's chart images as transient PNG files.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mglanz/csvreport/internal/dataset"
	"github.com/mglanz/csvreport/internal/summarize"
)

// ChartKind identifies one of the report's fixed chart types.
type ChartKind string

const (
	TypeDistribution ChartKind = "type_distribution"
	MissingValues    ChartKind = "missing_values"
	Histogram        ChartKind = "histogram"
)

// Options controls chart geometry and histogram binning.
type Options struct {
	Width  int
	Height int
	Bins   int
}

// DefaultOptions returns the geometry used by the standard report.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 640, Bins: 20}
}

// RenderError indicates a chart could not be produced.
type RenderError struct {
	Kind ChartKind
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart: %v", e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ChartArtifact is one rendered chart plus its transient storage path.
type ChartArtifact struct {
	Kind  ChartKind
	Title string
	Path  string
}

// ChartSet owns the rendered artifacts and their temp directory. Callers must
// Close it once the artifacts have been embedded (or on failure) so no temp
// file outlives the run.
type ChartSet struct {
	Artifacts []ChartArtifact

	dir string
}

// Close removes the temp directory and every artifact in it. Safe to call
// more than once.
func (s *ChartSet) Close() error {
	if s == nil || s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	return os.RemoveAll(dir)
}

// Find returns the artifact of the given kind, if it was rendered.
func (s *ChartSet) Find(kind ChartKind) (ChartArtifact, bool) {
	for _, a := range s.Artifacts {
		if a.Kind == kind {
			return a, true
		}
	}
	return ChartArtifact{}, false
}

// Charts renders the type-distribution and missing-values bar charts, plus a
// histogram of the first numeric column when one exists. The histogram is
// skipped, not an error, when the table has no numeric data. The missing
// chart draws one bar per column, zero-missing columns included at zero
// height.
func Charts(t *dataset.Table, sum summarize.Summary, opt Options) (*ChartSet, error) {
	dir, err := os.MkdirTemp("", "csvreport-charts-")
	if err != nil {
		return nil, &RenderError{Kind: TypeDistribution, Err: err}
	}
	set := &ChartSet{dir: dir}

	if err := set.add(TypeDistribution, "Column Type Distribution", typeBars(sum), opt); err != nil {
		_ = set.Close()
		return nil, err
	}
	if err := set.add(MissingValues, "Missing Values per Column", missingBars(sum), opt); err != nil {
		_ = set.Close()
		return nil, err
	}
	if col, ok := t.FirstNumeric(); ok {
		bars := histogramBars(col.Values(), opt.Bins)
		title := fmt.Sprintf("Distribution of %s", col.Name)
		if err := set.add(Histogram, title, bars, opt); err != nil {
			_ = set.Close()
			return nil, err
		}
	}
	return set, nil
}

func (s *ChartSet) add(kind ChartKind, title string, bars []chart.Value, opt Options) error {
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.png", kind, uuid.NewString()))
	if err := renderBars(path, title, bars, opt); err != nil {
		return &RenderError{Kind: kind, Err: err}
	}
	s.Artifacts = append(s.Artifacts, ChartArtifact{Kind: kind, Title: title, Path: path})
	return nil
}

var chartFill = map[ChartKind]drawing.Color{
	TypeDistribution: drawing.ColorFromHex("87ceeb"),
	MissingValues:    drawing.ColorFromHex("ff7f50"),
	Histogram:        drawing.ColorFromHex("90ee90"),
}

func typeBars(sum summarize.Summary) []chart.Value {
	fill := chartFill[TypeDistribution]
	var bars []chart.Value
	for _, kc := range sum.KindCounts() {
		bars = append(bars, chart.Value{
			Label: string(kc.Kind),
			Value: float64(kc.Count),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return bars
}

func missingBars(sum summarize.Summary) []chart.Value {
	fill := chartFill[MissingValues]
	bars := make([]chart.Value, 0, len(sum.Profiles))
	for _, p := range sum.Profiles {
		bars = append(bars, chart.Value{
			Label: p.Name,
			Value: float64(p.Missing),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return bars
}

// histogramBars bins values into equal-width buckets across [min, max].
func histogramBars(vals []float64, bins int) []chart.Value {
	if bins <= 0 {
		bins = 20
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	lo := floats.Min(sorted)
	hi := floats.Max(sorted)
	if lo == hi {
		hi = lo + 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram drops values on the upper boundary; nudge it past max
	dividers[bins] = hi + 1e-9*(math.Abs(hi)+1)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	fill := chartFill[Histogram]
	bars := make([]chart.Value, bins)
	for i := 0; i < bins; i++ {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.3g", dividers[i]),
			Value: counts[i],
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}
	return bars
}

func renderBars(path, title string, bars []chart.Value, opt Options) error {
	yMax := 1.0
	for _, b := range bars {
		if b.Value > yMax {
			yMax = b.Value
		}
	}
	barWidth := (opt.Width - 60) / (len(bars) * 2)
	if barWidth < 6 {
		barWidth = 6
	}
	bc := chart.BarChart{
		Title:      title,
		Width:      opt.Width,
		Height:     opt.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			// explicit range: an all-zero chart (no missing values anywhere)
			// must still render
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars: bars,
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bc.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
