package lsp

import (
	"context"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"pinecheck/internal/diag"
	"pinecheck/internal/driver"
	"pinecheck/internal/sema"
	"pinecheck/internal/source"
)

// document is one open editor buffer. Its analyzer is reused across edits,
// the mutex keeps analyses of the same buffer from overlapping.
type document struct {
	mu       sync.Mutex
	path     string
	content  string
	ver      protocol.Integer
	analyzer *sema.Analyzer
}

func (d *document) update(text string, version protocol.Integer) {
	d.mu.Lock()
	d.content = text
	d.ver = version
	d.mu.Unlock()
}

func (d *document) text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

func (d *document) version() protocol.Integer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ver
}

// diagnose analyzes the current buffer contents and converts the result
// into protocol diagnostics.
func (d *document) diagnose(ctx context.Context, opts driver.Options) ([]protocol.Diagnostic, protocol.Integer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fs := source.NewFileSet()
	name := d.path
	if name == "" {
		name = "untitled.pine"
	}
	fileID := fs.AddVirtual(name, []byte(d.content))
	res := driver.DiagnoseFile(ctx, fs, fileID, d.analyzer, opts)
	return toProtocol(res.Bag, res.File), d.ver
}

func toProtocol(bag *diag.Bag, file *source.File) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		sev := severityOf(d.Severity)
		src := d.Source
		if src == "" {
			src = diag.SourceTag
		}
		pd := protocol.Diagnostic{
			Range:    rangeForSpan(file, d.Primary),
			Severity: &sev,
			Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
			Source:   &src,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{
					URI:   protocol.DocumentUri(pathToURI(file.Path)),
					Range: rangeForSpan(file, n.Span),
				},
				Message: n.Msg,
			})
		}
		out = append(out, pd)
	}
	return out
}

func severityOf(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
