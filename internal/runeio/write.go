package runeio

import "strings"

// CaretForm computes the ^-escaped printable form of a control rune, or
// returns the empty string for any other rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Printable replaces every control rune in s with its caret form, so that
// literal text can be shown on a single line.
func Printable(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return CaretForm(r) != "" }) < 0 {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if caret := CaretForm(r); caret != "" {
			sb.WriteString(caret)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
