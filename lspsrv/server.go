// Package lspsrv is a minimal hover-only language server over
// go.lsp.dev/jsonrpc2 and go.lsp.dev/protocol, reporting schema-tag and
// ndarray-datatype information for .asdf documents. Only hover is
// implemented; completion, diagnostics, and semantic tokens are not.
package lspsrv

import (
	"context"
	"io"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/skyfield-labs/corefmt/ir"
)

const serverName = "asdf-hoverd"

// Run serves the LSP protocol over rw until the connection closes.
func Run(ctx context.Context, rw io.ReadWriteCloser) {
	stream := jsonrpc2.NewStream(rw)
	srv := &Server{docs: newDocumentStore()}
	handler := protocol.ServerHandler(srv, nil)
	conn := jsonrpc2.NewConn(stream)
	srv.conn = conn
	conn.Go(ctx, handler)
	<-conn.Done()
}

// Server implements the subset of protocol.Server this package supports;
// every method outside Initialize/Hover/document sync is a no-op stub.
type Server struct {
	conn jsonrpc2.Conn
	docs *documentStore
}

type document struct {
	text string
	root *ir.Node
}

type documentStore struct {
	mu   sync.Mutex
	docs map[string]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[string]*document)}
}

func (d *documentStore) get(uri string) *document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.docs[uri]
}

func (d *documentStore) set(uri string, doc *document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[uri] = doc
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
			},
			HoverProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{Name: serverName},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}
func (s *Server) Shutdown(ctx context.Context) error { return nil }
func (s *Server) Exit(ctx context.Context) error     { return nil }
