package lsp

import (
	"path/filepath"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pinecheck/internal/source"
)

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recorder(t *testing.T) (*glsp.Context, *[]notification) {
	t.Helper()
	var got []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			if !ok {
				t.Fatalf("unexpected params type %T", params)
			}
			got = append(got, notification{method: method, params: p})
		},
	}
	return ctx, &got
}

func TestInitializeAdvertisesSync(t *testing.T) {
	s := NewServer("1.2.3", Options{})
	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	init, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("unexpected result %T", res)
	}
	if init.ServerInfo == nil || init.ServerInfo.Name != lsName || *init.ServerInfo.Version != "1.2.3" {
		t.Fatalf("bad server info: %+v", init.ServerInfo)
	}
	opts, ok := init.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok || opts.Change == nil || *opts.Change != protocol.TextDocumentSyncKindIncremental {
		t.Fatalf("bad sync options: %+v", init.Capabilities.TextDocumentSync)
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s := NewServer("test", Options{})
	ctx, got := recorder(t)
	uri := protocol.DocumentUri("file:///tmp/a.pine")

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "pine", Version: 3, Text: "x = 1\nfoo()\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	n := (*got)[0]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics || n.params.URI != uri {
		t.Fatalf("bad notification %+v", n)
	}
	if n.params.Version == nil || *n.params.Version != 3 {
		t.Errorf("version not forwarded: %+v", n.params.Version)
	}
	if len(n.params.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", n.params.Diagnostics)
	}
	d := n.params.Diagnostics[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 0 {
		t.Errorf("range = %+v", d.Range)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v", d.Severity)
	}
	if d.Code == nil || d.Code.Value != "SEM3011" {
		t.Errorf("code = %+v", d.Code)
	}
}

func TestDidChangeAndClose(t *testing.T) {
	s := NewServer("test", Options{})
	ctx, got := recorder(t)
	uri := protocol.DocumentUri("file:///tmp/b.pine")

	if err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "foo()\n"},
	}); err != nil {
		t.Fatal(err)
	}
	// foo -> plot(1)
	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 5}},
				Text:  "plot(1)",
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(*got) != 2 {
		t.Fatalf("expected two notifications, got %d", len(*got))
	}
	if diags := (*got)[1].params.Diagnostics; len(diags) != 0 {
		t.Fatalf("edited buffer should be clean, got %+v", diags)
	}
	if text := s.open(uri).text(); text != "plot(1)\n" {
		t.Fatalf("buffer = %q", text)
	}

	if err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatal(err)
	}
	last := (*got)[len(*got)-1]
	if last.params.Diagnostics == nil || len(last.params.Diagnostics) != 0 {
		t.Fatalf("close must publish an empty list, got %+v", last.params.Diagnostics)
	}
	s.mu.Lock()
	_, still := s.docs[uri]
	s.mu.Unlock()
	if still {
		t.Fatalf("document still tracked after close")
	}
}

func TestDidSaveWithText(t *testing.T) {
	s := NewServer("test", Options{IgnoreWarnings: true})
	ctx, got := recorder(t)
	uri := protocol.DocumentUri("file:///tmp/c.pine")
	text := "var int unused = 1\n"

	if err := s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}); err != nil {
		t.Fatal(err)
	}
	if len(*got) != 1 || len((*got)[0].params.Diagnostics) != 0 {
		t.Fatalf("warnings must be filtered, got %+v", *got)
	}
}

func TestPositionForOffsetUTF16(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("u.pine", []byte("a😀b\nc")))

	tests := []struct {
		offset uint32
		want   protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{1, protocol.Position{Line: 0, Character: 1}},
		{5, protocol.Position{Line: 0, Character: 3}},
		{7, protocol.Position{Line: 1, Character: 0}},
		{100, protocol.Position{Line: 1, Character: 1}},
	}
	for _, tt := range tests {
		if got := positionForOffset(file, tt.offset); got != tt.want {
			t.Errorf("positionForOffset(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestOffsetForPosition(t *testing.T) {
	text := "a😀b\nc"
	tests := []struct {
		pos  protocol.Position
		want int
	}{
		{protocol.Position{Line: 0, Character: 0}, 0},
		{protocol.Position{Line: 0, Character: 3}, 5},
		{protocol.Position{Line: 0, Character: 2}, 1},
		{protocol.Position{Line: 0, Character: 99}, 6},
		{protocol.Position{Line: 1, Character: 1}, 8},
		{protocol.Position{Line: 5, Character: 0}, len(text)},
	}
	for _, tt := range tests {
		if got := offsetForPosition(text, tt.pos); got != tt.want {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestApplyChanges(t *testing.T) {
	rng := func(l1, c1, l2, c2 uint32) *protocol.Range {
		return &protocol.Range{
			Start: protocol.Position{Line: l1, Character: c1},
			End:   protocol.Position{Line: l2, Character: c2},
		}
	}
	tests := []struct {
		name    string
		text    string
		changes []any
		want    string
	}{
		{"whole", "old", []any{protocol.TextDocumentContentChangeEventWhole{Text: "new"}}, "new"},
		{"splice", "hello world", []any{protocol.TextDocumentContentChangeEvent{Range: rng(0, 6, 0, 11), Text: "there"}}, "hello there"},
		{"insert line", "a\nc", []any{protocol.TextDocumentContentChangeEvent{Range: rng(1, 0, 1, 0), Text: "b\n"}}, "a\nb\nc"},
		{"sequence", "abc", []any{
			protocol.TextDocumentContentChangeEvent{Range: rng(0, 0, 0, 1), Text: ""},
			protocol.TextDocumentContentChangeEvent{Range: rng(0, 2, 0, 2), Text: "d"},
		}, "bcd"},
		{"nil range", "x", []any{protocol.TextDocumentContentChangeEvent{Text: "y"}}, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChanges(tt.text, tt.changes); got != tt.want {
				t.Fatalf("applyChanges = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "with space.pine")
	uri := pathToURI(path)
	if got := uriToPath(uri); got != path {
		t.Fatalf("uriToPath(%q) = %q, want %q", uri, got, path)
	}
	if uriToPath("untitled:Untitled-1") != "" {
		t.Fatalf("non-file schemes must map to an empty path")
	}
}
