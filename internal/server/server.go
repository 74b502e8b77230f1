// Package server exposes the indicator engine over HTTP and pushes watcher
// overlays to websocket clients.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"go.uber.org/zap"
)

// Server serves the indicator API.
type Server struct {
	builder *overlay.Builder
	source  marketdata.BarSource
	hub     *Hub
	metrics *metrics.Metrics
	logger  *logger.Logger
	router  *mux.Router

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server. source may be nil, in which case the fetch
// endpoint responds with an error.
func NewServer(builder *overlay.Builder, source marketdata.BarSource, m *metrics.Metrics, log *logger.Logger) *Server {
	if m == nil {
		m = metrics.NewMetrics()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if builder == nil {
		builder = overlay.NewBuilder(nil, m, log)
	}

	s := &Server{
		builder: builder,
		source:  source,
		metrics: m,
		logger:  log.Named("server"),
	}
	s.hub = NewHub(m, log)
	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, s.accessLogMiddleware, corsMiddleware)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	router.HandleFunc("/indicators", s.handleListIndicators).Methods(http.MethodGet)
	router.HandleFunc("/indicators/{name}/schema", s.handleSchema).Methods(http.MethodGet)
	router.HandleFunc("/indicators/compute", s.handleCompute).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/indicators/fetch", s.handleFetch).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/ws", s.hub.HandleWS)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	return router
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub overlays are published to.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start listens on address and serves in the background. ":0" picks a free port.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeServerFailed, err, "failed to listen on %s", address)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("API server listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Stop closes every websocket client and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeServerFailed, "failed to shut down server", err)
	}

	return nil
}

// Address returns the address the server listens on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}
