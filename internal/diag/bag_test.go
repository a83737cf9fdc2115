package diag

import (
	"testing"

	"pinecheck/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(3)
	for i := range 5 {
		ok := b.Add(NewError(SemaTypeMismatch, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
		if want := i < 3; ok != want {
			t.Fatalf("Add #%d returned %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 3 || !b.Full() || b.Dropped() != 2 {
		t.Fatalf("len=%d full=%v dropped=%d", b.Len(), b.Full(), b.Dropped())
	}
}

func TestBagDefaultMax(t *testing.T) {
	for _, n := range []int{0, -1, 1 << 20} {
		if got := NewBag(n).Cap(); got != DefaultMax {
			t.Fatalf("NewBag(%d).Cap() = %d, want %d", n, got, DefaultMax)
		}
	}
}

func TestBagCount(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SemaUnusedVariable, source.Span{}, "unused"))
	b.Add(NewError(SemaTypeMismatch, source.Span{}, "mismatch"))
	b.Add(NewError(SemaUndefinedFunction, source.Span{}, "undef"))
	if got := b.Count(SevError); got != 2 {
		t.Fatalf("errors = %d, want 2", got)
	}
	if got := b.Count(SevWarning); got != 1 {
		t.Fatalf("warnings = %d, want 1", got)
	}
	if got := b.Count(SevInfo); got != 0 {
		t.Fatalf("infos = %d, want 0", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SemaUnusedVariable, source.Span{Start: 10, End: 12}, "unused"))
	b.Add(NewError(SemaTypeMismatch, source.Span{Start: 10, End: 12}, "mismatch"))
	b.Add(NewError(SemaUndefinedFunction, source.Span{Start: 1, End: 2}, "undef"))
	b.Add(NewError(SemaUndefinedFunction, source.Span{Start: 1, End: 2}, "undef"))
	b.Sort()
	b.Dedup()

	got := make([]Code, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{SemaUndefinedFunction, SemaTypeMismatch, SemaUnusedVariable}
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("severity flags wrong")
	}
}

func TestBagReporterFillsRange(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("r.pine", []byte("a = 1\nbb = c\n"))
	b := NewBag(10)
	r := BagReporter{Bag: b, File: fs.Get(id), Source: SourceTag}
	r.Report(SemaTypeMismatch, SevError, source.Span{File: id, Start: 11, End: 12}, "m", nil)

	d := b.Items()[0]
	want := source.Range{Start: source.Point{Row: 1, Column: 5}, End: source.Point{Row: 1, Column: 6}}
	if d.Range != want || d.Source != SourceTag {
		t.Fatalf("got range %v source %q", d.Range, d.Source)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 1, End: 3}
	r.Report(SynUnexpectedToken, SevError, sp, "boom", nil)
	r.Report(SynUnexpectedToken, SevError, sp, "boom", nil)
	r.Report(SynUnexpectedToken, SevError, sp, "other", nil)
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 1, End: 4}, "boom", nil)
	if b.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %d", b.Len())
	}
	if r.Suppressed() != 1 {
		t.Fatalf("Suppressed() = %d, want 1", r.Suppressed())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		SemaMissingArgs:    "SEM3015",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if SemaVoidAssign.Title() == UnknownCode.Title() {
		t.Errorf("SemaVoidAssign has no title")
	}
}
