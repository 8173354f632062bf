package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRecoveryMiddleware(logger.NewLoggerWithOutput(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Fatalf("expected panic logged, got %q", buf.String())
	}
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := NewLoggingMiddleware(logger.NewLoggerWithOutput(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "req-42" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	if !strings.Contains(buf.String(), "req-42") || !strings.Contains(buf.String(), "201") {
		t.Fatalf("expected request id and status in log, got %q", buf.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}
}
