package domain

import "strings"

// NormalizePhone canonicalizes a raw phone string to the national 01...
// format. It strips everything that is not a digit or a leading +, then
// rewrites the +880/880 country prefix to a leading 0. The cleaned string is
// returned even when it is not a valid number; callers decide whether to
// reject it via IsValidPhone.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.HasPrefix(cleaned, "+880") {
		cleaned = "0" + cleaned[4:]
	} else if strings.HasPrefix(cleaned, "880") {
		cleaned = "0" + cleaned[3:]
	}
	return cleaned
}

// IsValidPhone reports whether s is an 11-digit Bangladesh mobile number
// (01, operator digit 3-9, then 8 digits).
func IsValidPhone(s string) bool {
	if len(s) != 11 {
		return false
	}
	if s[0] != '0' || s[1] != '1' {
		return false
	}
	if s[2] < '3' || s[2] > '9' {
		return false
	}
	for i := 3; i < 11; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
