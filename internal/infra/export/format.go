// Package export implements the Excel and PDF export adapters of the grid.
package export

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format hints understood by the adapters.
const (
	FormatCurrency = "{0:c}"
	FormatNumber   = "{0:n}"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// formatCell renders a field value for text output. Currency uses US dollars
// with two decimals, numbers get thousands separators.
func formatCell(value any, format string) string {
	switch format {
	case FormatCurrency:
		if d, ok := asDecimal(value); ok {
			sign := ""
			if d.IsNegative() {
				sign = "-"
			}
			return sign + "$" + printer.Sprintf("%.2f", d.Abs().InexactFloat64())
		}
	case FormatNumber:
		if d, ok := asDecimal(value); ok {
			return printer.Sprintf("%.2f", d.InexactFloat64())
		}
	}

	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case decimal.Decimal:
		return v.String()
	}
	return ""
}

func asDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case int64:
		return decimal.NewFromInt(v), true
	}
	return decimal.Decimal{}, false
}
