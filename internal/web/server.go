// Package web provides the portalsur JSON API server.
package web

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/portalsur/portalsur/internal/gate"
	"github.com/portalsur/portalsur/internal/logging"
	"github.com/portalsur/portalsur/internal/store"
)

// Server is the catalog API server. One gate guards the whole process:
// the catalog has a single privileged operator session by design.
type Server struct {
	store   *store.Store
	gate    *gate.Gate
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates an API server over the given store and gate.
func NewServer(st *store.Store, g *gate.Gate) *Server {
	s := &Server{
		store: st,
		gate:  g,
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handlePropertyByID)
	s.mux.HandleFunc("/api/session", s.handleSession)

	s.handler = logging.RequestLogger(requestMetrics(s.mux))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the API server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
