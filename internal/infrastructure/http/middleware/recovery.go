package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/response"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

// NewRecoveryMiddleware turns a handler panic into a 500. http.ErrAbortHandler
// is re-raised so net/http can drop the connection silently.
func NewRecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithCorrelationID(w.Header().Get(RequestIDHeader)).Error("Panic recovered",
					"panic", rec,
					"route", r.Method+" "+r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
