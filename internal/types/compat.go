package types //nolint:revive

import "strings"

// enumTypes are the enum-like families that accept plain strings and vice versa.
var enumTypes = map[string]struct{}{
	"hline_style":         {},
	"plot_display":        {},
	"plot_simple_display": {},
	"shape":               {},
	"location":            {},
	"size":                {},
	"plot_style":          {},
	"line_style":          {},
	"text_align":          {},
	"position":            {},
	"strategy_direction":  {},
	"barmerge_lookahead":  {},
	"barmerge_gaps":       {},
	"xloc":                {},
	"yloc":                {},
	"extend":              {},
	"label_style":         {},
	"format":              {},
	"alert_freq":          {},
	"adjustment":          {},
	"currency":            {},
	"scale":               {},
	"font":                {},
	"session":             {},
	"order":               {},
	"display":             {},
}

// IsEnum reports whether t is one of the enum-like type families.
func IsEnum(t string) bool {
	_, ok := enumTypes[t]
	return ok
}

// drawing types accept int because `na` literals are frequently typed as int
var drawingTypes = map[string]struct{}{
	"line": {}, "label": {}, "box": {}, "table": {}, "polyline": {}, "linefill": {},
}

// IsCompatible reports whether a value of type actual may be used where target
// is expected. Either side may list alternatives separated by '|'; one compatible
// pair is enough. The relation is not symmetric: float accepts int, int does not
// accept float.
func IsCompatible(target, actual string) bool {
	if target == "" || actual == "" {
		return true
	}
	// any/na в любой позиции строки означает "не знаем" - совместимо
	if strings.Contains(target, "any") || strings.Contains(actual, "any") ||
		strings.Contains(target, "na") || strings.Contains(actual, "na") {
		return true
	}

	for _, rawT := range Split(target) {
		t := Normalize(rawT)
		for _, rawA := range Split(actual) {
			if compatiblePair(t, Normalize(rawA)) {
				return true
			}
		}
	}
	return false
}

func compatiblePair(t, a string) bool {
	if t == a {
		return true
	}
	if t == AnyArray && (strings.HasPrefix(a, "array<") || strings.HasSuffix(a, "[]")) {
		return true
	}
	if a == AnyArray && (strings.HasPrefix(t, "array<") || strings.HasSuffix(t, "[]")) {
		return true
	}

	// расширение int -> float только в одну сторону
	if t == Float && a == Int {
		return true
	}
	if t == "array<float>" && a == "array<int>" {
		return true
	}

	if t == Color && (a == Int || a == Float) {
		return true
	}
	if t == Bool && (a == Int || a == Float) {
		return true
	}
	if _, ok := drawingTypes[t]; ok && a == Int {
		return true
	}
	if t == String && (a == Float || a == Int) {
		return true
	}

	if IsEnum(t) && a == String || IsEnum(a) && t == String {
		return true
	}

	if t == "map<type>" || a == "map<type>" {
		return true
	}
	if strings.HasPrefix(t, "map<") && strings.HasPrefix(a, "map<") {
		return true
	}

	// метаданные вида array<[int|float|bool|string]> у вариативных параметров
	if strings.HasPrefix(t, "array<[") && (strings.HasPrefix(a, "array<") || !strings.Contains(a, "[")) {
		return true
	}

	if strings.Contains(t, a) || strings.Contains(a, t) {
		return strings.HasPrefix(t, "array<") == strings.HasPrefix(a, "array<")
	}
	return false
}
