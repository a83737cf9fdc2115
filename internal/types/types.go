// Package types implements the permissive string-based type model of the analyzer.
//
// A type is a plain string such as "float", "series int", "array<float>", "float[]",
// or an alternative set "int|float". Every comparison goes through Normalize, and
// IsCompatible decides assignability with a fixed list of relaxations that trade
// soundness for the absence of false positives.
package types //nolint:revive

import "strings"

// Well-known type names.
const (
	Any       = "any"
	AnyArray  = "any[]"
	Void      = "void"
	Int       = "int"
	Float     = "float"
	Bool      = "bool"
	String    = "string"
	Color     = "color"
	Namespace = "namespace"
	Type      = "type"
	Function  = "function"
	Map       = "map"
)

// Sep separates alternatives inside one type string.
const Sep = "|"

// Join merges alternatives into one type string.
func Join(alts []string) string {
	return strings.Join(alts, Sep)
}

// Split returns the alternatives of t.
func Split(t string) []string {
	return strings.Split(t, Sep)
}

// First returns the first alternative of t.
func First(t string) string {
	if i := strings.Index(t, Sep); i >= 0 {
		return t[:i]
	}
	return t
}

// ArrayOf returns the array type with elements of elem.
func ArrayOf(elem string) string {
	if elem == Any {
		return AnyArray
	}
	return "array<" + elem + ">"
}

// ElementOf returns the element type of an array type written as array<T> or T[].
func ElementOf(container string) (string, bool) {
	switch {
	case strings.HasPrefix(container, "array<") && strings.HasSuffix(container, ">"):
		return container[len("array<") : len(container)-1], true
	case strings.HasSuffix(container, "[]"):
		return container[:len(container)-2], true
	}
	return "", false
}

// IsArray reports whether t denotes an array after normalization.
func IsArray(t string) bool {
	n := Normalize(t)
	return n == AnyArray || strings.HasPrefix(n, "array<")
}
