// Package validation checks the files the report CLI writes.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"salarylens/internal/config"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// OutputValidator validates the report directory and its artifacts
type OutputValidator struct {
	logger *slog.Logger
}

// NewOutputValidator creates a new output validator
func NewOutputValidator(logger *slog.Logger) *OutputValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutputValidator{logger: logger}
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *OutputValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path is a readable, non-empty regular file
func (v *OutputValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}
	return nil
}

// ValidateReport opens an XLSX report and checks both sheets are present
func (v *OutputValidator) ValidateReport(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return fmt.Errorf("file %s is not an XLSX report (extension: %s)", path, ext)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		v.logger.Error("Report is not a readable workbook",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{config.UserInfoSheet, config.SalaryAnalysisSheet} {
		if !slices.Contains(sheets, want) {
			return fmt.Errorf("report %s is missing sheet %q", path, want)
		}
	}

	v.logger.Debug("Report validated",
		slog.String("file", path),
		slog.Int("sheets", len(sheets)))
	return nil
}

// ValidateChart checks that path holds a PNG image
func (v *OutputValidator) ValidateChart(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("chart %s is not readable: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, pngSignature) {
		return fmt.Errorf("chart %s is not a PNG image", path)
	}
	return nil
}

// ValidateBundle checks every written artifact, dispatching on extension
func (v *OutputValidator) ValidateBundle(paths []string) error {
	for _, path := range paths {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			err = v.ValidateReport(path)
		case ".png":
			err = v.ValidateChart(path)
		default:
			err = v.ValidateFile(path)
		}
		if err != nil {
			return err
		}
	}
	v.logger.Info("Report bundle validated", slog.Int("files", len(paths)))
	return nil
}
