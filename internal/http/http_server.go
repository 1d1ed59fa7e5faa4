package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	auth2 "gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/auth"
	"gitlab.com/codejudge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	judgeService judge.IJudgeService
	jwtProvider  primary.JWTService

	// ggAuth is nil when Google login is not configured
	ggAuth    auth2.IAuthService
	localAuth auth2.IAuthService
}

func NewServiceProvider(
	judgeService judge.IJudgeService,
	jwtProvider primary.JWTService,
	ggAuth auth2.IAuthService,
	localAuth auth2.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		judgeService: judgeService,
		jwtProvider:  jwtProvider,
		ggAuth:       ggAuth,
		localAuth:    localAuth,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	ggAuthConfig    *config.GGAuthConfig
	gatherer        prometheus.Gatherer
	logger          primary.Logger
}

func NewServer(
	port int,
	serviceName string,
	serviceProvider ServiceProvider,
	ggAuthConfig *config.GGAuthConfig,
	gatherer prometheus.Gatherer,
	logger primary.Logger,
) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		ggAuthConfig:    ggAuthConfig,
		gatherer:        gatherer,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.judgeService == nil || s.ServiceProvider.jwtProvider == nil {
		return errors.New("judge service and jwt provider are required")
	}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok", "service": s.ServiceName})
	}).Methods("GET")
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	middleware := handlers.New(s.ServiceProvider.jwtProvider, s.logger)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.judgeService, s.logger).
		RegisterRoutes(r, middleware.JWTMiddleware)
	auth.NewHandler(s.ggAuthConfig, s.logger).RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
	})
	s.router = r
	return nil
}

// Handler is the router wrapped with response compression.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
