// Package exporter turns a salary analysis into downloadable artifacts.
//
// WorkbookWriter writes the two-sheet XLSX report ("User Info" and
// "Salary Analysis") with excelize. ChartRenderer draws the take-home line
// chart and the combined payout bar chart as PNG images with go-chart.
// Exporter ties both together and can render a complete Bundle
// concurrently.
//
// Example usage:
//
//	exp := exporter.New(2025, 1024, 512)
//	bundle, err := exp.Bundle(ctx, analysis)
//	if err != nil {
//		return err
//	}
//	paths, err := bundle.WriteDir("reports")
package exporter
