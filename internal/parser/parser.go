package parser

import (
	"slices"

	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/lexer"
	"pinecheck/internal/source"
	"pinecheck/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser - состояние парсера на один файл
type Parser struct {
	tree     *cst.Tree
	file     *source.File
	toks     []token.Token // весь поток токенов, нужен для заглядывания за ')'
	closeAt  []int         // индекс парной закрывающей скобки, см. matchBrackets
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
// Парсер никогда не падает: нераспознанные участки становятся узлами "error".
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) *cst.Tree {
	toks := lx.Tokens()
	p := Parser{
		tree:     cst.NewTree(file),
		file:     file,
		toks:     toks,
		closeAt:  matchBrackets(toks),
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	return p.parseSourceFile()
}

// Parse lexes and parses file, sending lexer and parser diagnostics to the same reporter.
func Parse(file *source.File, opts Options) *cst.Tree {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(file, lx, opts)
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord проверяет контекстное слово (to, by, in, method, ...)
func (p *Parser) atWord(text string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && tok.Text == text
}

// prevKind - вид последнего съеденного токена
func (p *Parser) prevKind() token.Kind {
	if p.pos == 0 {
		return token.Invalid
	}
	return p.toks[p.pos-1].Kind
}

// atLineEnd - конец логической строки
func (p *Parser) atLineEnd() bool {
	return p.atOr(token.Newline, token.Dedent, token.EOF)
}

// parseSourceFile - основной цикл верхнего уровня
func (p *Parser) parseSourceFile() *cst.Tree {
	root := p.tree.Empty(cst.SourceFile, p.file.ID, 0)
	p.parseStatements(root, false)
	root.Span = source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))} // #nosec G115 -- content length checked on Add
	return p.tree.Finish(root)
}
