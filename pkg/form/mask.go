package form

import (
	"strconv"
	"strings"
)

// MaskMoney keeps the digits of s and reads them as cents: "1990" becomes
// "19.90" and "5" becomes "0.05". Input without digits masks to "".
func MaskMoney(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if b.Len() == 0 {
		return ""
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// ParseMoney reads a masked value back into a float.
func ParseMoney(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
