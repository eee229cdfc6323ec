package formatter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ClassPositive = "change-positive"
	ClassNegative = "change-negative"

	ArrowUp   = "▲"
	ArrowDown = "▼"
)

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
	thousand = decimal.New(1, 3)
)

// MarketCap renders a USD market capitalisation using the largest of the
// T/B/M units the value reaches, or whole dollars below one million.
func MarketCap(v decimal.Decimal) string {
	switch {
	case v.GreaterThanOrEqual(trillion):
		return fmt.Sprintf("$%sT", v.Div(trillion).StringFixed(2))
	case v.GreaterThanOrEqual(billion):
		return fmt.Sprintf("$%sB", v.Div(billion).StringFixed(2))
	case v.GreaterThanOrEqual(million):
		return fmt.Sprintf("$%sM", v.Div(million).StringFixed(2))
	}
	return "$" + v.StringFixed(0)
}

// Price renders a USD price with precision that shrinks as the value grows:
// 4 decimals below $1, 2 below $1000, none above.
func Price(v decimal.Decimal) string {
	switch {
	case v.LessThan(decimal.NewFromInt(1)):
		return "$" + v.StringFixed(4)
	case v.LessThan(thousand):
		return "$" + v.StringFixed(2)
	}
	return "$" + v.StringFixed(0)
}

// Change renders a 24h percent change as "<arrow> <abs>%" and returns the
// style class matching its sign. Zero counts as positive.
func Change(v decimal.Decimal) (text, class string) {
	arrow, class := ArrowUp, ClassPositive
	if v.IsNegative() {
		arrow, class = ArrowDown, ClassNegative
	}
	return fmt.Sprintf("%s %s%%", arrow, v.Abs().StringFixed(2)), class
}

// Clock renders t as a 24-hour wall clock time.
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}
