package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/mglanz/csvreport/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvreport configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		fmt.Printf("precision: %d\n", cfg.Precision)
		fmt.Printf("cell_width: %d\n", cfg.CellWidth)
		fmt.Printf("chart_width: %d\n", cfg.ChartWidth)
		fmt.Printf("chart_height: %d\n", cfg.ChartHeight)
		fmt.Printf("report_title: %s\n", cfg.ReportTitle)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "histogram_bins", "sample_rows", "precision", "cell_width", "chart_width", "chart_height":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a positive integer", key)
			}
			switch key {
			case "histogram_bins":
				cfg.HistogramBins = n
			case "sample_rows":
				cfg.SampleRows = n
			case "precision":
				cfg.Precision = n
			case "cell_width":
				cfg.CellWidth = n
			case "chart_width":
				cfg.ChartWidth = n
			case "chart_height":
				cfg.ChartHeight = n
			}
		case "report_title":
			cfg.ReportTitle = val
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
