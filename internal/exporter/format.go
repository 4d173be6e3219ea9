package exporter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"salarylens/internal/config"
)

// FormatAmount formats a rupee amount with two decimals and thousands
// separators ("145,000.00").
func FormatAmount(v float64) string {
	return groupThousands(decimal.NewFromFloat(v).StringFixed(2))
}

// FormatWholeAmount is FormatAmount rounded to whole rupees ("85,000"),
// as used by the take-home hint.
func FormatWholeAmount(v float64) string {
	return groupThousands(decimal.NewFromFloat(v).StringFixed(0))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}

// FormatLPA formats annual compensation in lakhs with two decimals
func FormatLPA(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// roundTo rounds half away from zero
func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// fileNameReplacer maps spaces and path separators in a user's name to
// underscores so the report name is always a single path element.
var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// ReportFileName returns the download name for a report. Spaces and path
// separators in the user's name become underscores.
func ReportFileName(name string, year int) string {
	return fmt.Sprintf(config.ReportFileNamePattern, fileNameReplacer.Replace(name), year)
}
