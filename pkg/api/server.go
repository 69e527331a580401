// Package api exposes the read-only HTTP surface over the interval store:
// endpoint listings, per-endpoint outage history, run status, and a live
// websocket stream.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ukparliament/outage-importer/pkg/importer"
	"github.com/ukparliament/outage-importer/pkg/timeseries"
)

const (
	defaultOutageLimit = 100
	maxOutageLimit     = 1000

	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// StatusProvider reports the most recent import run.
type StatusProvider interface {
	LastSummary() *importer.RunSummary
}

// Server serves the REST API and the live stream.
type Server struct {
	router      *mux.Router
	store       timeseries.Service
	measurement string
	status      StatusProvider
	httpServer  *http.Server
}

// NewServer wires the routes. stream may be nil when live streaming is
// disabled.
func NewServer(store timeseries.Service, measurement string, status StatusProvider, stream http.Handler) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		store:       store,
		measurement: measurement,
		status:      status,
	}

	s.setupRoutes(stream)

	return s
}

func (s *Server) setupRoutes(stream http.Handler) {
	// CORS middleware; the API is read-only.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	s.router.HandleFunc("/api/endpoints", s.getEndpoints).Methods("GET")
	s.router.HandleFunc("/api/endpoints/{id}/outages", s.getEndpointOutages).Methods("GET")
	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")

	if stream != nil {
		s.router.Handle("/api/live", stream)
	}
}

func (s *Server) getEndpoints(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.store.Endpoints(r.Context(), s.measurement)
	if err != nil {
		log.Printf("Error listing endpoints: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	if statuses == nil {
		statuses = []timeseries.EndpointStatus{}
	}

	writeJSON(w, statuses)
}

func (s *Server) getEndpointOutages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	endpointID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid endpoint id", http.StatusBadRequest)
		return
	}

	limit := defaultOutageLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxOutageLimit {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
	}

	outages, err := s.store.EndpointOutages(r.Context(), s.measurement, endpointID, limit)
	if err != nil {
		log.Printf("Error fetching outages for endpoint %d: %v", endpointID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	if outages == nil {
		http.Error(w, "Endpoint not found", http.StatusNotFound)
		return
	}

	writeJSON(w, outages)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	var summary *importer.RunSummary

	if s.status != nil {
		summary = s.status.LastSummary()
	}

	if summary == nil {
		http.Error(w, "No completed import run yet", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves the API on addr until Stop is called.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}
