package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyChanges folds a didChange batch into text. Whole-document events
// replace the text; ranged events splice it.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start := offsetForPosition(text, c.Range.Start)
			end := offsetForPosition(text, c.Range.End)
			if end < start {
				end = start
			}
			text = text[:start] + c.Text + text[end:]
		}
	}
	return text
}

// offsetForPosition maps an LSP position onto a byte offset of text. Lines
// past the end clamp to len(text); characters past the line end clamp to it.
func offsetForPosition(text string, pos protocol.Position) int {
	var line uint32
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	var units uint32
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16Width(r)
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}
