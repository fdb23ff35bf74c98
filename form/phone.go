package form

import "strings"

// FormatPhone keeps only the digits of s. When they start with 7 it lays
// them out as "+7 (XXX) XXX-XX-XX", dropping digits past the eleventh;
// missing groups come out empty, so "7999" gives "+7 (999) --".
func FormatPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if !strings.HasPrefix(d, "7") {
		return d
	}
	return "+7 (" + slice(d, 1, 4) + ") " + slice(d, 4, 7) + "-" + slice(d, 7, 9) + "-" + slice(d, 9, 11)
}

// slice is s[i:j] clamped to len(s). d is ASCII digits only.
func slice(s string, i, j int) string {
	if i > len(s) {
		i = len(s)
	}
	if j > len(s) {
		j = len(s)
	}
	return s[i:j]
}
