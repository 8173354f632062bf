package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/middleware"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/monitoring"
)

const requestTimeout = 60 * time.Second

func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(corsMiddleware)
	r.Use(monitoring.Middleware)
	r.Use(middleware.NewLoggingMiddleware(s.logger))
	r.Use(middleware.NewRecoveryMiddleware(s.logger))

	r.Handle("/metrics", monitoring.Handler())
	r.Get("/health", s.handlers.Health.HandleHealth)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeoutMiddleware)

		v1.Route("/items", func(items chi.Router) {
			items.Get("/", s.handlers.Items.HandleListItems)
			items.Post("/", s.handlers.Items.HandleCreateItem)
			items.Get("/{id}", s.handlers.Items.HandleGetItem)
			items.Delete("/{id}", s.handlers.Items.HandleDeleteItem)
		})

		v1.Route("/simulation", func(sim chi.Router) {
			sim.Post("/advance", s.handlers.Simulation.HandleAdvance)
			sim.Get("/state", s.handlers.Simulation.HandleState)
			sim.Post("/preview", s.handlers.Simulation.HandlePreview)
		})
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, requestTimeout, "Request timeout")
}
