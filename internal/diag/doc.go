// Package diag defines the diagnostic model shared by the lexer, parser and
// semantic analyzer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX/SYN/SEM/IO/PRJ/OBS prefixes).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span pointing at the issue.
//   - Range – the same location as zero-based row/column points. Producers that
//     know the file fill it in (see BagReporter); editors consume it directly.
//   - Source – optional tag ("Pine Script" for analyzer output).
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission stays decoupled from storage.
// BagReporter aggregates into a Bag, which enforces a hard limit (the analyzer
// uses DefaultMax) and supports sorting, deduplication and filtering.
// DedupReporter drops repeated reports of the same finding.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
