package utils

import "strings"

// NormalizePhoneRU reduces a Russian phone number to the +7XXXXXXXXXX form.
// Numbers that do not look Russian are returned as digits with a leading +.
func NormalizePhoneRU(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case len(digits) == 11 && (digits[0] == '8' || digits[0] == '7'):
		return "+7" + digits[1:]
	case len(digits) == 10 && digits[0] == '9':
		return "+7" + digits
	default:
		return "+" + digits
	}
}
