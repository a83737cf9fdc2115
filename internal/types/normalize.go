package types //nolint:revive

import (
	"regexp"
	"strings"
)

var qualifierRe = regexp.MustCompile(`(?:series|const|input|simple)\s+`)

// Normalize lowercases t, strips type qualifiers, rewrites T[] as array<T> and
// folds the internal enum-like families onto a single name.
func Normalize(t string) string {
	if t == "" {
		return Any
	}
	n := strings.TrimSpace(qualifierRe.ReplaceAllString(strings.ToLower(t), ""))

	if strings.HasSuffix(n, "[]") {
		n = "array<" + n[:len(n)-2] + ">"
	}

	switch {
	case strings.Contains(n, "hline_style"):
		return "hline_style"
	case strings.Contains(n, "plot_style"):
		return "plot_style"
	case strings.Contains(n, "plot_display"), strings.Contains(n, "display_"):
		return "plot_display"
	case strings.Contains(n, "hline_simple_display"):
		return "plot_display"
	}

	switch {
	case n == "array", n == "array<any>":
		return AnyArray
	case strings.HasPrefix(n, "array<"), strings.HasPrefix(n, "map<"):
		return n
	case n == "na":
		return Any
	}
	return n
}
