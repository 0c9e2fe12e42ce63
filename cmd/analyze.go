package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mglanz/csvreport/internal/dataset"
	"github.com/mglanz/csvreport/internal/summarize"
)

var (
	anaDelimiter string
	anaFormat    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Profile a data file and print a column summary to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig(cmd)
		delim, err := parseDelimiter(anaDelimiter)
		if err != nil {
			return err
		}
		tbl, err := dataset.Load(args[0], dataset.Options{Delimiter: delim})
		if err != nil {
			return err
		}
		sum := summarize.Summarize(tbl)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "File: %s\n", tbl.Source)
		fmt.Fprintf(out, "Rows: %d  Columns: %d  Missing values: %d\n\n", sum.Rows, sum.Cols, sum.TotalMissing)

		tw := table.NewWriter()
		tw.SetOutputMirror(out)
		tw.AppendHeader(table.Row{"Column", "Type", "Missing", "Mean", "Median", "Std Dev", "Min", "Max"})
		for _, p := range sum.Profiles {
			if ns, ok := sum.Numeric(p.Name); ok {
				tw.AppendRow(table.Row{
					p.Name, p.Kind, p.Missing,
					num(ns.Mean, c.Precision), num(ns.Median, c.Precision), num(ns.StdDev, c.Precision),
					num(ns.Min, c.Precision), num(ns.Max, c.Precision),
				})
			} else {
				tw.AppendRow(table.Row{p.Name, p.Kind, p.Missing, "-", "-", "-", "-", "-"})
			}
		}
		if anaFormat == "md" {
			tw.RenderMarkdown()
		} else {
			tw.SetStyle(table.StyleLight)
			tw.Render()
		}
		return nil
	},
}

func num(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "table", "output format: 'table' | 'md'")
}
