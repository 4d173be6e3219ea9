package exporter

import (
	"fmt"

	"salarylens/internal/salary"
)

// SummaryLine is one labelled value of the summary panel
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the panel shown above the projection table
type Summary struct {
	Greeting string        `json:"greeting"`
	Lines    []SummaryLine `json:"lines"`
}

// NewSummary builds the summary panel for a. Amounts use the same
// formatting as the workbook.
func NewSummary(a *salary.Analysis) Summary {
	p := a.Profile
	return Summary{
		Greeting: fmt.Sprintf("Hello, %s!", p.Name),
		Lines: []SummaryLine{
			{Label: "Designation", Value: p.Designation},
			{Label: "Company", Value: p.Company},
			{Label: "Work Location", Value: string(p.Location)},
			{Label: "Experience", Value: p.Experience.String()},
			{Label: "Annual CTC", Value: "₹" + FormatLPA(p.AnnualLPA) + " LPA"},
			{Label: "Monthly In-hand", Value: "₹" + FormatAmount(a.TakeHome)},
			{Label: "Tax Regime", Value: string(p.TaxRegime)},
			{Label: "Analysis", Value: a.Assessment.Comment},
		},
	}
}

// TakeHomeHint is the label suffix shown next to the take-home input
func TakeHomeHint(suggested float64) string {
	return fmt.Sprintf("Estimated: ₹%s", FormatWholeAmount(suggested))
}
