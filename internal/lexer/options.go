package lexer

import (
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
)

// TabWidth is the column stop a tab advances to when measuring indentation.
const TabWidth = 4

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}
