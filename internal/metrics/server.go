package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// Handler is an HTTP handler exposed by the metrics server
type Handler struct {
	Handler     http.Handler
	Path        string
	Description string
}

type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger

	addr     string
	handlers []Handler
}

// NewServer creates a metrics server listening on addr (host:port)
func NewServer(addr string, logger *slog.Logger, handlers ...Handler) *Server {
	return &Server{addr: addr, logger: logger, handlers: handlers}
}

// Start binds the listener and serves in the background
func (m *Server) Start() error {
	const (
		defaultHTTPServerReadTimeoutSeconds  = 30
		defaultHTTPServerWriteTimeoutSeconds = 30
	)

	router := mux.NewRouter()
	router.HandleFunc("/", m.handleRoot).Methods(http.MethodGet)
	for _, handler := range m.handlers {
		m.logger.Debug("adding metrics handler", "path", handler.Path)
		router.Handle(handler.Path, handler.Handler)
	}

	listener, err := net.Listen("tcp", m.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", m.addr, err)
	}
	m.listener = listener

	m.server = &http.Server{
		Handler:      router,
		ReadTimeout:  time.Duration(defaultHTTPServerReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(defaultHTTPServerWriteTimeoutSeconds) * time.Second,
	}

	go func() {
		m.logger.Info("metrics server started", "addr", listener.Addr().String())
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("metrics server failed", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, useful when started on port 0
func (m *Server) Addr() string {
	if m.listener == nil {
		return m.addr
	}
	return m.listener.Addr().String()
}

// Stop gracefully stops the server
func (m *Server) Stop() {
	if m.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		m.logger.Error("error shutting down the metrics server", "error", err)
	}
	m.logger.Info("metrics server stopped")
}

func (m *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	builder := strings.Builder{}
	for _, handler := range m.handlers {
		builder.WriteString(fmt.Sprintf("<div><a href=\"%s\">%s</a></div>\n", handler.Path, handler.Description))
	}

	html := fmt.Sprintf(`
		<html>
			<body>
				%s
			</body>
		</html>
	`, builder.String())

	if _, err := w.Write([]byte(html)); err != nil {
		m.logger.Error("error rendering metrics page", "error", err)
	}
}
