package source

import "fmt"

// Less reports whether p is strictly before other.
func (p Point) Less(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// LineCol converts the point to a 1-based position.
func (p Point) LineCol() LineCol {
	return LineCol{Line: p.Row + 1, Col: p.Column + 1}
}

// Contains reports whether p lies inside r. End is inclusive so a cursor placed
// right after the last character still belongs to the range.
func (r Range) Contains(p Point) bool {
	return !p.Less(r.Start) && !r.End.Less(p)
}

// ContainsRange reports whether other is nested in r.
func (r Range) ContainsRange(other Range) bool {
	return !other.Start.Less(r.Start) && !r.End.Less(other.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// PointAt converts a byte offset into a zero-based Point.
func (f *File) PointAt(off uint32) Point {
	lc := toLineCol(f.LineIdx, off)
	return Point{Row: lc.Line - 1, Column: lc.Col - 1}
}

// RangeOf converts a span of this file into a Range.
func (f *File) RangeOf(span Span) Range {
	return Range{Start: f.PointAt(span.Start), End: f.PointAt(span.End)}
}

// OffsetAt is the inverse of PointAt. Columns past the end of a line clamp to the line end.
func (f *File) OffsetAt(p Point) uint32 {
	var start uint32
	if p.Row > 0 {
		if int(p.Row-1) >= len(f.LineIdx) {
			return uint32(len(f.Content)) // #nosec G115 -- content length checked on Add
		}
		start = f.LineIdx[p.Row-1] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- content length checked on Add
	if int(p.Row) < len(f.LineIdx) {
		end = f.LineIdx[p.Row]
	}
	if start+p.Column > end {
		return end
	}
	return start + p.Column
}
