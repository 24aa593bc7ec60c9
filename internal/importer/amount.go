package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a money string written either with a decimal point
// ("1,234.56", "12.5") or a decimal comma ("1.234,56", "12,50"). Currency
// markers are ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("₺", "", "TL", "", "TRY", "", " ", "", " ", "").Replace(s)

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case lastDot > lastComma:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
