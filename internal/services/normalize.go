package services

import "strings"

// NormalizeE164 converts a dialable destination to E.164 where it can do
// so safely. Ten digits get the NANP country code; eleven digits leading
// with 1 get a plus sign; anything else that was written with a leading
// plus keeps it. Other shapes pass through unchanged so legitimate
// international numbers reach the provider, which is the final validator.
func NormalizeE164(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case len(d) == 10:
		return "+1" + d
	case len(d) == 11 && d[0] == '1':
		return "+" + d
	case strings.HasPrefix(strings.TrimSpace(raw), "+") && len(d) > 0:
		return "+" + d
	default:
		return raw
	}
}
