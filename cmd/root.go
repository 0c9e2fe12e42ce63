package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/mglanz/csvreport/internal/config"
	"github.com/mglanz/csvreport/internal/dataset"
	"github.com/mglanz/csvreport/internal/render"
	"github.com/mglanz/csvreport/internal/report"
	"github.com/mglanz/csvreport/internal/summarize"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Report flags (override config if set)
	flagDelimiter  string
	flagBins       int
	flagSampleRows int
	flagPrecision  int
	flagTitle      string

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "csvreport [input_path] [output_pdf]",
	Short: "Generate a PDF analysis report from a CSV file",
	Long: `csvreport reads a delimited data file (CSV/TSV/XLSX), computes descriptive
statistics per column, renders summary charts, and assembles everything into
a formatted PDF report. With no arguments it reports on a bundled sample
dataset and names the output after the current timestamp.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runReport,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvreport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.Flags().StringVar(&flagDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	rootCmd.Flags().IntVar(&flagBins, "bins", 0, "histogram bucket count (overrides config)")
	rootCmd.Flags().IntVar(&flagSampleRows, "sample-rows", 0, "rows in the sample table (overrides config)")
	rootCmd.Flags().IntVar(&flagPrecision, "precision", 0, "decimal places in the statistics table (overrides config)")
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "report title (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still allow a report run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig merges loaded config with any explicit flag overrides.
func effectiveConfig(cmd *cobra.Command) cfgpkg.Config {
	c := cfgpkg.Config{
		HistogramBins: 20,
		SampleRows:    10,
		Precision:     2,
		CellWidth:     20,
		ChartWidth:    1024,
		ChartHeight:   640,
		ReportTitle:   "CSV Data Analysis Report",
	}
	if cfg != nil {
		c = *cfg
	}
	f := cmd.Flags()
	if f.Changed("bins") && flagBins > 0 {
		c.HistogramBins = flagBins
	}
	if f.Changed("sample-rows") && flagSampleRows > 0 {
		c.SampleRows = flagSampleRows
	}
	if f.Changed("precision") && flagPrecision > 0 {
		c.Precision = flagPrecision
	}
	if f.Changed("title") && flagTitle != "" {
		c.ReportTitle = flagTitle
	}
	return c
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	c := effectiveConfig(cmd)

	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		path, cleanup, err := materializeSample()
		if err != nil {
			return err
		}
		defer cleanup()
		input = path
		fmt.Fprintln(os.Stderr, "⚠ No input given; reporting on the bundled sample dataset")
	}
	out := fmt.Sprintf("report_%s.pdf", time.Now().Format("20060102_150405"))
	if len(args) > 1 {
		out = args[1]
	}

	delim, err := parseDelimiter(flagDelimiter)
	if err != nil {
		return err
	}
	tbl, err := dataset.Load(input, dataset.Options{Delimiter: delim})
	if err != nil {
		return err
	}
	sum := summarize.Summarize(tbl)
	if debug {
		fmt.Fprintf(os.Stderr, "• loaded %d rows, %d columns (%d numeric)\n", sum.Rows, sum.Cols, len(sum.Numerics))
	}

	charts, err := render.Charts(tbl, sum, render.Options{
		Width:  c.ChartWidth,
		Height: c.ChartHeight,
		Bins:   c.HistogramBins,
	})
	if err != nil {
		return err
	}
	defer charts.Close()

	opt := report.Options{
		Title:      c.ReportTitle,
		Precision:  c.Precision,
		SampleRows: c.SampleRows,
		CellWidth:  c.CellWidth,
	}
	if err := report.Build(tbl, sum, charts, out, opt); err != nil {
		return err
	}
	fmt.Printf("✓ Report written to %s\n", out)
	return nil
}
