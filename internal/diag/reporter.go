package diag

import "pinecheck/internal/source"

// Reporter - минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр дублей).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter - адаптер, который пишет в *Bag.
// Если File задан, Range диагностики вычисляется из span.
type BagReporter struct {
	Bag    *Bag
	File   *source.File
	Source string
}

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Source: r.Source, Notes: notes,
	}
	if r.File != nil {
		d.Range = r.File.RangeOf(primary)
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
