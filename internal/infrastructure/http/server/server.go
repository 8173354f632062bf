package server

import (
	"context"
	"net/http"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/config"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Items      *handlers.ItemHandler
	Simulation *handlers.SimulationHandler
}

type Server struct {
	server   *http.Server
	logger   *logger.Logger
	handlers Handlers
}

func NewServer(cfg config.ServerConfig, h Handlers, logger *logger.Logger) *Server {
	s := &Server{
		logger:   logger,
		handlers: h,
	}

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
