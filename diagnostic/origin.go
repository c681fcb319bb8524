package diagnostic

import (
	"regexp"
	"strings"
)

// prettyFuncName matches "<qualifiers> <name>(<params>)"
var prettyFuncName = regexp.MustCompile(`^(.* )?([^ (]*)\(.*$`)

// OriginName reduces a function description to the short name of the
// innermost callable. It understands pretty-function text
// ("void ns::Class::method(int)" → "method") and Go symbols
// ("example.com/pkg.(*Class).method.func1" → "method"). An empty raw
// yields Placeholder; when nothing can be extracted raw is returned
// verbatim.
func OriginName(raw string) string {
	if raw == "" {
		return Placeholder
	}

	var name string
	if isGoSymbol(raw) {
		name = goShortName(raw)
	} else {
		name = raw
		if m := prettyFuncName.FindStringSubmatch(raw); m != nil {
			name = m[2]
		}
		name = unqualify(name)
	}

	if name == "" {
		return raw
	}
	return name
}

func isGoSymbol(raw string) bool {
	return !strings.ContainsAny(raw, " \t") &&
		!strings.Contains(raw, "::") &&
		!strings.HasSuffix(raw, ")")
}

func unqualify(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func goShortName(raw string) string {
	s := raw[strings.LastIndexByte(raw, '/')+1:]
	s = strings.ReplaceAll(s, "[...]", "")
	parts := strings.Split(s, ".")
	if len(parts) > 1 {
		// drop the package name
		parts = parts[1:]
	}

	for i := len(parts) - 1; i >= 0; i-- {
		p := strings.Trim(parts[i], "(*)")
		if p == "" || isGeneratedName(p) {
			continue
		}
		return p
	}
	return ""
}

// isGeneratedName reports closure and wrapper suffixes such as func1,
// gowrap2 or a bare sequence number.
func isGeneratedName(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" && isDigits(rest) {
			return true
		}
	}
	return isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
