// Package api exposes the development backend over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bimod/internal/devserver/coe"
	"github.com/dmitrijs2005/bimod/internal/devserver/reports"
	"github.com/dmitrijs2005/bimod/internal/devserver/users"
	"github.com/dmitrijs2005/bimod/internal/logging"
	"github.com/gorilla/mux"
)

const (
	shutdownTimeout = 5 * time.Second
	maxUploadBytes  = 32 << 20
)

type Server struct {
	address string
	log     logging.Logger
	users   *users.Service
	reports *reports.Service
	coe     *coe.Service
	router  *mux.Router
}

func NewServer(addr string, l logging.Logger, us *users.Service, rs *reports.Service, cs *coe.Service) *Server {
	s := &Server{
		address: addr,
		log:     l.With("module", "http_server"),
		users:   us,
		reports: rs,
		coe:     cs,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	std := []func(http.HandlerFunc) http.HandlerFunc{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.CorsMiddleware,
	}
	open := func(h http.HandlerFunc) http.HandlerFunc { return ChainMiddleware(h, std...) }
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, append(std, s.AuthMiddleware)...)
	}
	methods := func(m ...string) []string { return append(m, http.MethodOptions) }

	r.HandleFunc("/health", open(s.health)).Methods(methods(http.MethodGet)...)

	r.HandleFunc("/api/auth/register", open(s.register)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/auth/login", open(s.login)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/auth/me", authed(s.me)).Methods(methods(http.MethodGet)...)

	r.HandleFunc("/api/dashboard/stats", authed(s.dashboardStats)).Methods(methods(http.MethodGet)...)

	r.HandleFunc("/api/reports/", authed(s.listReports)).Methods(http.MethodGet)
	r.HandleFunc("/api/reports/", authed(s.createReport)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/reports/consolidate", authed(s.consolidate)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/reports/{id:[0-9]+}", authed(s.getReport)).Methods(http.MethodGet)
	r.HandleFunc("/api/reports/{id:[0-9]+}", authed(s.updateReport)).Methods(http.MethodPut)
	r.HandleFunc("/api/reports/{id:[0-9]+}", authed(s.deleteReport)).Methods(methods(http.MethodDelete)...)

	r.HandleFunc("/api/coe/upload", authed(s.uploadCOE)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/coe/history", authed(s.coeHistory)).Methods(methods(http.MethodGet)...)
	r.HandleFunc("/api/coe/results/{id:[0-9]+}", authed(s.coeResult)).Methods(http.MethodGet)
	r.HandleFunc("/api/coe/results/{id:[0-9]+}", authed(s.deleteCOE)).Methods(methods(http.MethodDelete)...)

	r.HandleFunc("/api/sql/analyze", authed(s.analyzeSQL)).Methods(methods(http.MethodPost)...)
	r.HandleFunc("/api/sql/compare", authed(s.compareSQL)).Methods(methods(http.MethodPost)...)

	r.NotFoundHandler = open(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = open(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn(ctx, "shutdown", "error", err)
		}
	}()

	s.log.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
