package diagnostic

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxReasonLen bounds the formatted reason in bytes
const MaxReasonLen = 255

// formatReason renders format with args. When the arguments do not fit
// the format, or the formatter panics, the raw format is used instead.
// The result never exceeds MaxReasonLen bytes.
func formatReason(format string, args []any) (reason string) {
	defer func() {
		if r := recover(); r != nil {
			reason = truncate(format, MaxReasonLen)
		}
	}()

	out := fmt.Sprintf(format, args...)
	if (out == "" && format != "") || !formatted(format, args, out) {
		return truncate(format, MaxReasonLen)
	}
	return truncate(out, MaxReasonLen)
}

func formatted(format string, args []any, out string) bool {
	n, ok := countVerbs(format)
	if !ok {
		return false
	}
	if n >= 0 && n != len(args) {
		return false
	}
	// fmt reports wrong verb/argument types inline as %!d(string=x)
	return !strings.Contains(out, "%!") || argsContain(args, "%!")
}

// countVerbs returns how many arguments format consumes, or -1 when it
// uses explicit argument indexes. ok is false for a dangling '%'.
func countVerbs(format string) (n int, ok bool) {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		// width
		if i < len(format) && format[i] == '*' {
			n++
			i++
		}
		i = skipDigits(format, i)
		// precision
		if i < len(format) && format[i] == '.' {
			i++
			if i < len(format) && format[i] == '*' {
				n++
				i++
			}
			i = skipDigits(format, i)
		}
		if i >= len(format) {
			return n, false
		}
		switch format[i] {
		case '[':
			return -1, true
		case '%':
		default:
			n++
		}
	}
	return n, true
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func argsContain(args []any, sub string) bool {
	for _, a := range args {
		var s string
		switch v := a.(type) {
		case string:
			s = v
		case error:
			s = v.Error()
		case fmt.Stringer:
			s = v.String()
		default:
			continue
		}
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
