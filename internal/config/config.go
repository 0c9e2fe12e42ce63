package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds report-formatting settings.
type Config struct {
	HistogramBins int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	SampleRows    int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	Precision     int    `mapstructure:"precision" yaml:"precision"`
	CellWidth     int    `mapstructure:"cell_width" yaml:"cell_width"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height" yaml:"chart_height"`
	ReportTitle   string `mapstructure:"report_title" yaml:"report_title"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVREPORT")
	v.AutomaticEnv()

	v.SetDefault("histogram_bins", 20)
	v.SetDefault("sample_rows", 10)
	v.SetDefault("precision", 2)
	v.SetDefault("cell_width", 20)
	v.SetDefault("chart_width", 1024)
	v.SetDefault("chart_height", 640)
	v.SetDefault("report_title", "CSV Data Analysis Report")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvreport")
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the configuration to cfgFile, or to ~/.csvreport/config.yaml
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvreport")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
