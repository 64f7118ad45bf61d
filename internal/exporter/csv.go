package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVWriter writes report files beneath a fixed output directory.
type CSVWriter struct {
	outDir string
}

// NewCSVWriter creates a writer rooted at outDir. An empty outDir means the
// working directory.
func NewCSVWriter(outDir string) *CSVWriter {
	if outDir == "" {
		outDir = "."
	}
	return &CSVWriter{outDir: outDir}
}

// WriteOptions configures one CSV file.
type WriteOptions struct {
	// Preamble lines are written verbatim before the CSV body, one per line.
	Preamble []string
	Headers  []string
	Records  [][]string
}

// WriteCSV writes a whole CSV file and returns its full path. The write is
// single-pass and not resumable; a mid-write failure may leave a partial
// file.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if dir := filepath.Dir(fullPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	for _, line := range options.Preamble {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return "", fmt.Errorf("failed to write header line: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return fullPath, nil
}

// resolvePath roots relative paths at the configured output directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.outDir, filePath)
}
