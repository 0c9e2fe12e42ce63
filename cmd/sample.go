package cmd

import (
	_ "embed"
	"os"
)

//go:embed sample.csv
var sampleCSV []byte

// materializeSample writes the embedded sample dataset to a temp file so the
// loader treats it like any other input. The returned cleanup removes it.
func materializeSample() (string, func(), error) {
	f, err := os.CreateTemp("", "csvreport-sample-*.csv")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(sampleCSV); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}
