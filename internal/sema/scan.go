package sema

import (
	"fmt"
	"regexp"
	"strings"

	"pinecheck/internal/builtins"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
	"pinecheck/internal/types"
)

var (
	// name( where the parameter list may start
	callHeadRe = regexp.MustCompile(`([A-Za-z_]\w*)\s*\(`)
	// var|varip type name = at line start
	varDeclRe = regexp.MustCompile(`(?m)^(var|varip)\s+(\w+)\s+(\w+)\s*=`)
)

// scanDefinitions is pass 0: register every `name(...) =>` in the raw text as
// a tentative function with unknown parameters. Each `name(` is matched to its
// own `)`, so a preceding call cannot swallow a definition.
func (a *Analyzer) scanDefinitions() {
	closeAt := matchParens(a.text)
	for _, m := range callHeadRe.FindAllStringSubmatchIndex(a.text, -1) {
		open := m[1] - 1
		end, ok := closeAt[open]
		if !ok || !strings.HasPrefix(strings.TrimLeft(a.text[end+1:], " \t\r\n"), "=>") {
			continue
		}
		name := a.text[m[2]:m[3]]
		if m[2] > 0 && a.text[m[2]-1] == '.' {
			continue
		}
		if builtins.IsKeyword(name) || a.catalog.Has(name) || a.corpus.Has(name) {
			continue
		}
		a.catalog.Set(&builtins.Signature{
			Name:        name,
			Description: "User function (recovered via text scan)",
			ReturnType:  types.Any,
		})
	}
}

// matchParens pairs round brackets of text in one pass, ignoring string
// literals and line comments. Unclosed brackets have no entry.
func matchParens(text string) map[int]int {
	closeAt := make(map[int]int)
	var open []int
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '(':
			open = append(open, i)
		case ')':
			if n := len(open); n > 0 {
				closeAt[open[n-1]] = i
				open = open[:n-1]
			}
		case '"', '\'':
			// строка заканчивается кавычкой или концом строки
			for i++; i < len(text) && text[i] != c && text[i] != '\n'; i++ {
				if text[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
			}
		}
	}
	return closeAt
}

// scanUnusedVars is pass 3: a global `var T name = ...` whose name occurs only
// once in the whole document is reported as unused.
func (a *Analyzer) scanUnusedVars() {
	for _, m := range varDeclRe.FindAllStringSubmatchIndex(a.text, -1) {
		typeName := a.text[m[4]:m[5]]
		name := a.text[m[6]:m[7]]
		if strings.HasPrefix(name, "_") || typeName == "var" || typeName == "varip" {
			continue
		}
		if countWord(a.text, name) > 1 {
			continue
		}
		span := source.Span{Start: uint32(m[6]), End: uint32(m[7])} // #nosec G115 -- offsets bounded by file size
		if a.file != nil {
			span.File = a.file.ID
		}
		a.rep.Report(diag.SemaUnusedVariable, diag.SevWarning, span,
			fmt.Sprintf("Variable '%s' is declared but never used.", name), nil)
	}
}

// countWord counts word-bounded occurrences of name in text.
func countWord(text, name string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}
