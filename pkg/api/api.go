// Package api implements the HTTP surface of the customer service.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"customerapi/pkg/customer"
	"customerapi/pkg/logger"
)

// maxBodyBytes caps the size of create and update request bodies.
const maxBodyBytes = 1024 * 16

// Server holds the dependencies shared by every request handler.
type Server struct {
	repo   customer.Repository
	log    *logger.Logger
	tracer trace.Tracer
}

// NewServer returns a Server exposing the given repository over HTTP.
func NewServer(repo customer.Repository, log *logger.Logger, tracer trace.Tracer) *Server {
	return &Server{repo: repo, log: log, tracer: tracer}
}

// Routes builds the service router: the customer collection under
// /customers plus the health, metrics and swagger mounts.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/customers").Subrouter()
	api.Use(s.traceMiddleware, s.requestIDMiddleware, s.logMiddleware, metricsMiddleware)
	api.HandleFunc("", s.listCustomersHandler).Methods(http.MethodGet)
	api.HandleFunc("", s.createCustomerHandler).Methods(http.MethodPost)
	api.HandleFunc("/{guid}", s.getCustomerHandler).Methods(http.MethodGet)
	api.HandleFunc("/{guid}", s.updateCustomerHandler).Methods(http.MethodPut)
	api.HandleFunc("/{guid}", s.deleteCustomerHandler).Methods(http.MethodDelete)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// healthHandler reports process liveness.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
