package diagfmt

import (
	"encoding/json"
	"io"

	"pinecheck/internal/diag"
	"pinecheck/internal/source"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string       `json:"message"`
	File    string       `json:"file"`
	Range   source.Range `json:"range"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
// Поля severity/range/message/source совпадают с форматом редактора.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Range    source.Range `json:"range"`
	Message  string       `json:"message"`
	Source   string       `json:"source"`
	Code     string       `json:"code"`
	File     string       `json:"file"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		out := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Range:    fs.Range(d.Primary),
			Message:  d.Message,
			Source:   d.Source,
			Code:     d.Code.ID(),
			File:     formatPath(fs.Get(d.Primary.File), fs, opts.PathMode),
		}
		if out.Source == "" {
			out.Source = diag.SourceTag
		}
		includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
		if includeNotes && len(d.Notes) > 0 {
			out.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				out.Notes[j] = NoteJSON{
					Message: note.Msg,
					File:    formatPath(fs.Get(note.Span.File), fs, opts.PathMode),
					Range:   fs.Range(note.Span),
				}
			}
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
