package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Session *session.Session
	// Watcher, when set, reloads the journal after other processes change
	// the store.
	Watcher store.Watcher
	Logger  *zap.Logger
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// NewServer builds the MCP server over j.
func NewServer(j *journal.Journal, name, version string) *server.MCPServer {
	if name == "" {
		name = "diary"
	}
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read, search and write diary entries via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(j)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("mcp runner requires a session")
	}
	if _, err := r.Session.RequireUser(); err != nil {
		return fmt.Errorf("%w: run `diary login` first", err)
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if r.Watcher != nil {
		if err := r.follow(ctx, log); err != nil {
			log.Warn("store watch unavailable", zap.Error(err))
		}
	}

	srv := NewServer(r.Session.Journal(), r.Name, r.Version)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// follow reloads the journal whenever the store reports a change.
func (r Runner) follow(ctx context.Context, log *zap.Logger) error {
	events, err := r.Watcher.Watch(ctx)
	if err != nil {
		return err
	}
	j := r.Session.Journal()
	go func() {
		for range events {
			if err := j.Load(ctx); err != nil {
				log.Debug("reload after store change", zap.Error(err))
			}
		}
	}()
	return nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *zap.Logger) error {
	useTLS := r.HTTPServerCert != "" || r.HTTPServerKey != ""
	if useTLS && (r.HTTPServerCert == "" || r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	path := "/" + strings.TrimPrefix(r.HTTPEndpointPath, "/")
	if path == "/" {
		path = "/mcp"
	}
	addr := r.HTTPListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	log.Info("serving MCP", zap.Stringer("addr", ln.Addr()), zap.String("path", path), zap.Bool("tls", useTLS))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown MCP server", zap.Error(err))
		}
	}()

	if useTLS {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
