package salary_test

import (
	"fmt"

	"salarylens/internal/salary"
)

// Example_analyze shows the default suggestion and verdict for a
// mid-career profile on 12 LPA.
func Example_analyze() {
	est := salary.NewEstimator(salary.DefaultTables())

	analysis, err := est.Analyze(salary.Profile{
		Name:       "Asha Rao",
		Experience: salary.ThreeToFiveYears,
		Location:   salary.Bangalore,
		TaxRegime:  salary.NewTaxRegime,
		AnnualLPA:  12,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("Gross monthly: %.0f\n", analysis.GrossMonthly)
	fmt.Printf("Suggested take-home: %.0f\n", analysis.SuggestedTakeHome)
	fmt.Printf("Verdict: %s\n", analysis.Assessment.Verdict)
	fmt.Println(analysis.Assessment.Comment)
	fmt.Printf("Rows: %d (%d%%..%d%%)\n", len(analysis.Projections),
		analysis.Projections[0].HikePercent, analysis.Projections[len(analysis.Projections)-1].HikePercent)
	// Output:
	// Gross monthly: 100000
	// Suggested take-home: 85000
	// Verdict: above_market
	// You are earning above market expectations!
	// Rows: 40 (5%..200%)
}
