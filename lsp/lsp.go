package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/poscar/poscar"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "poscar"

var log = commonlog.GetLogger("poscar.lsp")

// Server publishes parse errors and advisory warnings for POSCAR files as
// LSP diagnostics.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(version string) *Server {
	s := &Server{
		version: version,
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

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
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
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publishDiagnostics(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publishDiagnostics(ctx, params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.publishDiagnostics(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(string(uri))
	if err != nil {
		path = string(uri)
	}

	diagnostics := Diagnose(path, content)
	log.Debugf("%s: %d diagnostics", path, len(diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnose parses content and converts every parse error and advisory
// warning into an LSP diagnostic.
func Diagnose(path string, content []byte) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	warn := func(w poscar.Warning) {
		diagnostics = append(diagnostics, diagnostic(
			w.Line, 0, w.Message, protocol.DiagnosticSeverityWarning,
		))
	}

	_, err := poscar.ParseBytes(content, poscar.WithPath(path), poscar.WithWarnings(warn))
	if err != nil {
		var parseErr *poscar.ParseError
		if errors.As(err, &parseErr) {
			line, col := parseErr.Line, parseErr.Col
			if line < 0 {
				line = 0
			}
			if col < 0 {
				col = 0
			}
			diagnostics = append(diagnostics, diagnostic(
				line, col, parseErr.Err.Error(), protocol.DiagnosticSeverityError,
			))
		} else {
			diagnostics = append(diagnostics, diagnostic(
				0, 0, err.Error(), protocol.DiagnosticSeverityError,
			))
		}
	}

	return diagnostics
}

func diagnostic(line, col int, message string, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	source := lsName
	pos := protocol.Position{Line: uint32(line), Character: uint32(col)}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: protocol.Position{Line: pos.Line, Character: pos.Character + 1}},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
