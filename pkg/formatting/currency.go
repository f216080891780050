// Package formatting provides display formatting helpers for presentation
// consumers: Brazilian-real currency strings and calendar-date parsing.
// The aggregation core never formats values; these exist for widget text.
package formatting

import (
	"fmt"
	"math"
	"strings"
)

// BRL formats a value as Brazilian reais in pt-BR convention:
// "R$ 1.234,56". Negative values carry a leading minus sign.
func BRL(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	cents := int64(math.Round(value * 100))
	whole := cents / 100
	fraction := cents % 100

	return fmt.Sprintf("%sR$ %s,%02d", sign, groupThousands(whole), fraction)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
