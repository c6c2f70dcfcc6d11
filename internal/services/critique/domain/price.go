package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var jpy = message.NewPrinter(language.Japanese)

// FormatPrice renders an appraisal in yen with grouping, e.g. "¥1,234,567"
func FormatPrice(price int64) string {
	return jpy.Sprintf("¥%v", number.Decimal(price))
}

// FormatPriceReadable renders an appraisal in spoken units,
// e.g. "1,234万円" or "1.2億円"
func FormatPriceReadable(price int64) string {
	switch {
	case price >= 100_000_000:
		oku := float64(price) / 100_000_000
		if oku == float64(int64(oku)) {
			return fmt.Sprintf("%d億円", int64(oku))
		}
		return fmt.Sprintf("%.1f億円", oku)
	case price >= 10_000:
		man := price / 10_000
		return jpy.Sprintf("%v万円", number.Decimal(man))
	default:
		return jpy.Sprintf("%v円", number.Decimal(price))
	}
}
