package sema

import (
	"context"
	"strconv"

	"pinecheck/internal/builtins"
	"pinecheck/internal/cst"
	"pinecheck/internal/diag"
	"pinecheck/internal/source"
	"pinecheck/internal/symbols"
	"pinecheck/internal/trace"
	"pinecheck/internal/types"
)

// Options configure an Analyzer.
type Options struct {
	// MaxDiagnostics caps the diagnostics of one call; 0 means diag.DefaultMax.
	MaxDiagnostics int
}

// Result stores what one analysis produced.
type Result struct {
	Diagnostics []diag.Diagnostic
	Functions   *Catalog
	Scopes      *symbols.ScopeTree
	// Dropped counts diagnostics rejected by the cap.
	Dropped int
}

// Analyzer checks one document at a time. It is not safe for concurrent use;
// the corpus it holds is shared read-only.
type Analyzer struct {
	corpus *builtins.Corpus
	opts   Options

	// per-call state, rebuilt by reset
	tree    *cst.Tree
	file    *source.File
	text    string
	bag     *diag.Bag
	rep     diag.Reporter
	catalog *Catalog
	scopes  *symbols.ScopeTree
	stack   *symbols.Stack
	typed   map[string]bool
	// левая часть, отвергнутая checkTarget в текущем присваивании
	rejected *cst.Node
}

// New creates an analyzer over corpus. A nil corpus means the embedded default.
func New(corpus *builtins.Corpus, opts Options) *Analyzer {
	if corpus == nil {
		corpus = builtins.Default()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = diag.DefaultMax
	}
	return &Analyzer{corpus: corpus, opts: opts}
}

// Corpus returns the built-in corpus used by the analyzer.
func (a *Analyzer) Corpus() *builtins.Corpus {
	return a.corpus
}

// Analyze runs all passes over tree. State from previous calls is discarded.
// ctx only carries the tracer; the call always runs to completion.
func (a *Analyzer) Analyze(ctx context.Context, tree *cst.Tree) Result {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopePass, "sema_analyze", trace.SpanFromContext(ctx))

	a.reset(tree)
	if tree == nil || tree.Root == nil {
		root.End("empty")
		return a.result()
	}

	phase := func(name string, fn func()) {
		span := trace.Begin(tracer, trace.ScopePass, name, root.ID())
		fn()
		span.End("")
	}
	phase("sema_scan_definitions", a.scanDefinitions)
	phase("sema_collect", a.collect)
	phase("sema_validate", a.validate)
	phase("sema_unused_vars", a.scanUnusedVars)

	res := a.result()
	root.WithExtra("diagnostics", strconv.Itoa(len(res.Diagnostics))).
		WithExtra("functions", strconv.Itoa(res.Functions.Len())).
		End("")
	return res
}

func (a *Analyzer) reset(tree *cst.Tree) {
	a.tree = tree
	a.file = nil
	a.text = ""
	var (
		span source.Span
		rng  source.Range
	)
	if tree != nil {
		a.file = tree.File
		if tree.Root != nil {
			span = tree.Root.Span
			rng = tree.Root.Range()
		}
	}
	if a.file != nil {
		a.text = string(a.file.Content)
	}
	a.bag = diag.NewBag(a.opts.MaxDiagnostics)
	a.rep = diag.BagReporter{Bag: a.bag, File: a.file, Source: diag.SourceTag}
	a.catalog = newCatalog()
	a.scopes = symbols.NewScopeTree(span, rng)
	a.stack = symbols.NewStack(a.scopes)
	a.typed = make(map[string]bool)
	a.rejected = nil
	a.defineBuiltins()
}

func (a *Analyzer) result() Result {
	items := a.bag.Items()
	out := make([]diag.Diagnostic, len(items))
	copy(out, items)
	return Result{
		Diagnostics: out,
		Functions:   a.catalog,
		Scopes:      a.scopes,
		Dropped:     a.bag.Dropped(),
	}
}

// defineBuiltins registers namespaces first, then the core variables that
// are not already taken by a namespace.
func (a *Analyzer) defineBuiltins() {
	global := a.scopes.Global()
	for _, ns := range builtins.NamespaceSymbols() {
		global.Put(&symbols.Symbol{
			Name:      ns,
			Type:      types.Namespace,
			Qualifier: symbols.QualifierConst,
			Flags:     symbols.SymbolFlagBuiltin,
		})
	}
	for _, name := range builtins.CoreVariables() {
		if global.Has(name) {
			continue
		}
		global.Put(&symbols.Symbol{
			Name:      name,
			Type:      builtins.CoreVariableType(name),
			Qualifier: symbols.QualifierSeries,
			Flags:     symbols.SymbolFlagBuiltin,
		})
	}
}

// define declares name in the current scope. decl may be nil.
func (a *Analyzer) define(name, typ string, q symbols.Qualifier, decl *cst.Node) *symbols.Symbol {
	sym := &symbols.Symbol{Name: name, Type: typ, Qualifier: q}
	if decl != nil {
		r := decl.Range()
		sym.Decl = &r
	}
	a.stack.Define(sym)
	return sym
}

// lookupFunction resolves a callable: user catalog first, then the corpus.
func (a *Analyzer) lookupFunction(name string) (*builtins.Signature, bool) {
	if sig, ok := a.catalog.Get(name); ok {
		return sig, true
	}
	return a.corpus.Lookup(name)
}

func (a *Analyzer) report(code diag.Code, sev diag.Severity, n *cst.Node, msg string) {
	a.rep.Report(code, sev, n.Span, msg, nil)
}

func (a *Analyzer) errorf(code diag.Code, n *cst.Node, msg string) {
	a.report(code, diag.SevError, n, msg)
}
