package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pinecheck/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// utf16Width is the number of UTF-16 code units r occupies.
func utf16Width(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// positionForOffset converts a byte offset of file into an LSP position
// (zero-based line, UTF-16 character).
func positionForOffset(file *source.File, offset uint32) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	var units uint32
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if off+safeUint32(size) > offset {
			break
		}
		units += utf16Width(r)
		off += safeUint32(size)
	}
	return protocol.Position{Line: safeUint32(line), Character: units}
}

func rangeForSpan(file *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, span.End),
	}
}
