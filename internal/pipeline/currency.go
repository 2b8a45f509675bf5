package pipeline

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"marquee/domain/show"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount at the given scale as
// US$<grouped value with 2 decimals><K|M>, e.g. US$1,234.57K.
// The 2-decimal rounding applies to the binary float quotient, so 1.005
// renders as US$1.00 and 2.675 as US$2.67.
func FormatCurrency(amount float64, scale show.Scale) string {
	scaled := decimal.NewFromFloat(amount).Div(decimal.NewFromInt(scale.Divisor()))
	return "US$" + usPrinter.Sprintf("%.2f", scaled.InexactFloat64()) + scale.Suffix()
}

// FormatNumber renders a count with US thousands grouping and no decimals
func FormatNumber(v float64) string {
	return usPrinter.Sprintf("%.0f", v)
}
