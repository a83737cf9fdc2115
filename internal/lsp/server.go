// Package lsp serves Pine Script diagnostics over the Language Server
// Protocol. Only document sync and publishDiagnostics are supported.
package lsp

import (
	"context"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// backend для commonlog
	_ "github.com/tliron/commonlog/simple"

	"pinecheck/internal/builtins"
	"pinecheck/internal/driver"
	"pinecheck/internal/sema"
)

const lsName = "pinecheck"

// Options configures the analysis performed for every open document.
type Options struct {
	Corpus         *builtins.Corpus
	MaxDiagnostics int
	IgnoreWarnings bool
}

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	opts    Options
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

func NewServer(version string, opts Options) *Server {
	s := &Server{
		version: version,
		opts:    opts,
		log:     commonlog.GetLogger(lsName),
		docs:    make(map[protocol.DocumentUri]*document),
	}
	if s.opts.Corpus == nil {
		s.opts.Corpus = builtins.Default()
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves requests on stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Info("initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := s.open(item.URI)
	doc.update(item.Text, item.Version)
	s.publish(ctx, item.URI, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := s.open(uri)
	doc.update(applyChanges(doc.text(), params.ContentChanges), params.TextDocument.Version)
	s.publish(ctx, uri, doc)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := s.open(uri)
	if params.Text != nil {
		doc.update(*params.Text, doc.version())
	}
	s.publish(ctx, uri, doc)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
	// закрытый документ не должен держать старые ошибки в редакторе
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// open returns the document for uri, creating an empty one if needed.
func (s *Server) open(uri protocol.DocumentUri) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{
			path:     uriToPath(string(uri)),
			analyzer: sema.New(s.opts.Corpus, sema.Options{MaxDiagnostics: s.opts.MaxDiagnostics}),
		}
		s.docs[uri] = doc
	}
	return doc
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *document) {
	diagnostics, version := doc.diagnose(context.Background(), driver.Options{
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Corpus:         s.opts.Corpus,
		IgnoreWarnings: s.opts.IgnoreWarnings,
	})
	s.log.Debugf("publish %d diagnostics for %s", len(diagnostics), uri)
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	if version >= 0 {
		v := safeUint32(int(version))
		params.Version = &v
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
