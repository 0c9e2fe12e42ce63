// Package report assembles the final PDF document from the loaded table, its
// summary, and the rendered chart artifacts.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mglanz/csvreport/internal/dataset"
	"github.com/mglanz/csvreport/internal/render"
	"github.com/mglanz/csvreport/internal/summarize"
	"github.com/mglanz/csvreport/internal/utils"
)

// Options controls report formatting.
type Options struct {
	Title      string
	Precision  int
	SampleRows int
	CellWidth  int
}

// DefaultOptions returns the standard report formatting.
func DefaultOptions() Options {
	return Options{
		Title:      "CSV Data Analysis Report",
		Precision:  2,
		SampleRows: 10,
		CellWidth:  20,
	}
}

// WriteError indicates the report could not be written to the output path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

const (
	contentWidth = 190.0 // A4 width minus margins
	pageBottom   = 270.0
	imageWidth   = 150.0
	imageHeight  = 94.0 // 1024x640 artifact at 150mm wide
)

// Build assembles the report sections in fixed order and writes the document
// atomically, so failures leave no partial file behind.
func Build(t *dataset.Table, sum summarize.Summary, charts *render.ChartSet, outPath string, opt Options) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opt.Title, true)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	b := &builder{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), opt: opt}
	b.titleSection(t, sum)
	b.summarySection(sum)
	b.columnsSection(sum)
	if len(sum.Numerics) > 0 {
		b.statsSection(sum)
	}
	if charts != nil && len(charts.Artifacts) > 0 {
		b.chartsSection(charts)
	}
	b.sampleSection(t)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	if err := utils.SafeWriteFile(outPath, buf.Bytes()); err != nil {
		return &WriteError{Path: outPath, Err: err}
	}
	return nil
}

type builder struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	opt Options
}

func (b *builder) titleSection(t *dataset.Table, sum summarize.Summary) {
	b.pdf.SetFont("Helvetica", "B", 22)
	b.pdf.SetTextColor(23, 54, 93)
	b.pdf.CellFormat(contentWidth, 12, b.tr(b.opt.Title), "", 1, "C", false, 0, "")
	b.pdf.Ln(4)

	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.SetTextColor(120, 120, 120)
	b.pdf.CellFormat(contentWidth, 5, "Generated: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	b.pdf.CellFormat(contentWidth, 5, b.tr("Source file: "+t.Source), "", 1, "L", false, 0, "")
	b.pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Total records: %d", sum.Rows), "", 1, "L", false, 0, "")
	b.pdf.Ln(6)
}

func (b *builder) sectionTitle(text string) {
	b.pdf.SetFont("Helvetica", "B", 14)
	b.pdf.SetTextColor(23, 54, 93)
	b.pdf.CellFormat(contentWidth, 9, b.tr(text), "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

func (b *builder) headerRow(widths []float64, labels []string) {
	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.SetFillColor(23, 54, 93)
	for i, l := range labels {
		b.pdf.CellFormat(widths[i], 7, b.tr(l), "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(-1)
}

func (b *builder) bodyRow(widths []float64, cells []string, shaded bool, size float64) {
	b.pdf.SetFont("Helvetica", "", size)
	b.pdf.SetTextColor(0, 0, 0)
	if shaded {
		b.pdf.SetFillColor(235, 235, 235)
	} else {
		b.pdf.SetFillColor(255, 255, 255)
	}
	for i, c := range cells {
		b.pdf.CellFormat(widths[i], 6, b.tr(c), "1", 0, "L", true, 0, "")
	}
	b.pdf.Ln(-1)
}

func (b *builder) summarySection(sum summarize.Summary) {
	b.sectionTitle("Dataset Summary")
	if sum.Rows == 0 {
		b.pdf.SetFont("Helvetica", "I", 10)
		b.pdf.SetTextColor(120, 120, 120)
		b.pdf.CellFormat(contentWidth, 6, "Dataset contains no data rows.", "", 1, "L", false, 0, "")
		b.pdf.Ln(2)
	}
	widths := []float64{70, 40}
	b.headerRow(widths, []string{"Metric", "Value"})
	rows := [][2]string{
		{"Total records", fmt.Sprintf("%d", sum.Rows)},
		{"Total columns", fmt.Sprintf("%d", sum.Cols)},
		{"Numeric columns", fmt.Sprintf("%d", sum.KindTotal(dataset.Numeric))},
		{"Textual columns", fmt.Sprintf("%d", sum.KindTotal(dataset.Textual))},
		{"Other columns", fmt.Sprintf("%d", sum.KindTotal(dataset.Other))},
		{"Missing values", fmt.Sprintf("%d", sum.TotalMissing)},
	}
	for i, r := range rows {
		b.bodyRow(widths, []string{r[0], r[1]}, i%2 == 1, 9)
	}
	b.pdf.Ln(6)
}

func (b *builder) columnsSection(sum summarize.Summary) {
	b.sectionTitle("Columns")
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(0, 0, 0)
	for _, p := range sum.Profiles {
		line := fmt.Sprintf("%s (%s, %d missing)", p.Name, p.Kind, p.Missing)
		b.pdf.CellFormat(contentWidth, 5.5, b.tr("- "+line), "", 1, "L", false, 0, "")
	}
	b.pdf.Ln(6)
}

func (b *builder) statsSection(sum summarize.Summary) {
	b.sectionTitle("Descriptive Statistics")
	nameW := 43.0
	metricW := (contentWidth - nameW) / 7
	widths := []float64{nameW, metricW, metricW, metricW, metricW, metricW, metricW, metricW}
	b.headerRow(widths, []string{"Column", "Mean", "Median", "Std Dev", "Min", "Max", "Q1", "Q3"})
	for i, ns := range sum.Numerics {
		cells := []string{
			ns.Column,
			b.num(ns.Mean), b.num(ns.Median), b.num(ns.StdDev),
			b.num(ns.Min), b.num(ns.Max), b.num(ns.Q1), b.num(ns.Q3),
		}
		b.bodyRow(widths, cells, i%2 == 1, 8)
	}
	b.pdf.Ln(6)
}

func (b *builder) num(v float64) string {
	return fmt.Sprintf("%.*f", b.opt.Precision, v)
}

func (b *builder) chartsSection(charts *render.ChartSet) {
	b.sectionTitle("Visualizations")
	x := (210.0 - imageWidth) / 2
	for _, a := range charts.Artifacts {
		if b.pdf.GetY()+imageHeight > pageBottom {
			b.pdf.AddPage()
		}
		b.pdf.ImageOptions(a.Path, x, 0, imageWidth, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		b.pdf.Ln(4)
	}
	b.pdf.Ln(2)
}

func (b *builder) sampleSection(t *dataset.Table) {
	b.sectionTitle(fmt.Sprintf("Sample Rows (first %d)", b.opt.SampleRows))
	if t.Cols() == 0 {
		return
	}
	ncol := t.Cols()
	w := contentWidth / float64(ncol)
	widths := make([]float64, ncol)
	for i := range widths {
		widths[i] = w
	}
	size := 7.0
	if ncol > 8 {
		size = 6
	}
	names := make([]string, ncol)
	for i, n := range t.ColumnNames() {
		names[i] = truncate(n, b.opt.CellWidth)
	}
	b.headerRow(widths, names)
	for i, row := range t.Head(b.opt.SampleRows) {
		cells := make([]string, ncol)
		for j, v := range row {
			cells[j] = truncate(v, b.opt.CellWidth)
		}
		b.bodyRow(widths, cells, i%2 == 1, size)
	}
}

func truncate(s string, width int) string {
	if width <= 3 {
		width = 4
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
