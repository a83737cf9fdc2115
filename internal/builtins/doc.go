// Package builtins holds the built-in knowledge of the analyzer: the function
// corpus loaded from JSON (or a compiled msgpack snapshot) and the fixed tables
// of keywords, namespaces, void functions and pre-typed variables.
package builtins
