package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salarylens/internal/config"
	"salarylens/internal/salary"
)

// UserInfoHeaders are the column headers of the "User Info" sheet
var UserInfoHeaders = []string{
	"Name", "Company", "Designation", "Location", "Experience", "Tax Regime",
	"Annual CTC (LPA)", "Monthly In-hand (₹)", "CTC to In-hand Ratio", "Fair Pay Comment",
}

// ProjectionHeaders are the column headers of the "Salary Analysis" sheet
// and of the on-screen projection table.
var ProjectionHeaders = []string{
	"Hike %", "New Gross Monthly (₹)", "New In-hand (₹)", "April Arrear (₹)", "May In-hand Salary (₹)",
}

// WorkbookWriter writes the two-sheet salary report.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write renders a as an XLSX workbook to out.
func (w *WorkbookWriter) Write(out io.Writer, a *salary.Analysis) error {
	if a == nil {
		return fmt.Errorf("no analysis to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), config.UserInfoSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(config.SalaryAnalysisSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeUserInfo(f, a, headerStyle); err != nil {
		return err
	}
	if err := writeProjections(f, a.Projections, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeUserInfo(f *excelize.File, a *salary.Analysis, style int) error {
	sheet := config.UserInfoSheet
	p := a.Profile

	if err := writeHeader(f, sheet, UserInfoHeaders, style); err != nil {
		return err
	}
	row := []interface{}{
		p.Name,
		p.Company,
		p.Designation,
		string(p.Location),
		p.Experience.String(),
		string(p.TaxRegime),
		p.AnnualLPA,
		a.TakeHome,
		roundTo(a.Assessment.Ratio, 3),
		a.Assessment.Comment,
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		return fmt.Errorf("failed to write user info: %w", err)
	}
	return f.SetColWidth(sheet, "A", "J", 18)
}

func writeProjections(f *excelize.File, rows []salary.Projection, style int) error {
	sheet := config.SalaryAnalysisSheet

	if err := writeHeader(f, sheet, ProjectionHeaders, style); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.HikePercent, r.NewGross, r.NewTakeHome, r.Arrear, r.Combined}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write projection row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(sheet, "A", "E", 22)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s headers: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
