package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/stockdecay-service/internal/application/commands"
	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	"github.com/yuzvak/stockdecay-service/internal/config"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type memoryItems struct {
	items map[string]*inventory.Item
}

func (m *memoryItems) Handle(ctx context.Context, cmd commands.AddItemCommand) (*inventory.Item, error) {
	item, err := inventory.NewItem(cmd.Name, cmd.SellIn, cmd.Quality)
	if err != nil {
		return nil, err
	}
	item.ID = "generated"
	m.items[item.ID] = item
	return item, nil
}

func (m *memoryItems) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	out := make([]*inventory.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

func (m *memoryItems) GetItem(ctx context.Context, id string) (*inventory.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}
	return item, nil
}

func (m *memoryItems) RemoveItem(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domainErrors.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryItems) GetState(ctx context.Context) (*use_cases.InventoryState, error) {
	items, _ := m.ListItems(ctx, 0, 0)
	return &use_cases.InventoryState{State: &simulation.State{}, Summary: inventory.Summarize(items)}, nil
}

type busyAdvancer struct{}

func (busyAdvancer) Handle(ctx context.Context, cmd commands.AdvanceDayCommand) (*simulation.AdvanceResult, error) {
	return nil, domainErrors.ErrAdvanceInProgress
}

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

func (p pinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

func newTestServer(dbErr error) (*Server, *memoryItems) {
	log := logger.NewLoggerWithOutput(io.Discard)
	store := &memoryItems{items: make(map[string]*inventory.Item)}

	h := Handlers{
		Health:     handlers.NewHealthHandler(pinger{err: dbErr}, pinger{}, log),
		Items:      handlers.NewItemHandler(store, store, log),
		Simulation: handlers.NewSimulationHandler(busyAdvancer{}, store, log),
	}

	return NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, h, log), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestItemRoutes(t *testing.T) {
	s, store := newTestServer(nil)

	rec := do(t, s, http.MethodPost, "/api/v1/items", `{"name": "Aged Brie", "sell_in": 2, "quality": 0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data handlers.ItemResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Category != string(inventory.CategoryImproving) {
		t.Fatalf("expected improving category, got %q", created.Data.Category)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/items/generated", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/items?limit=10", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/items/generated", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}
	if len(store.items) != 0 {
		t.Fatal("expected item removed")
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/items/generated", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestItemValidation(t *testing.T) {
	s, _ := newTestServer(nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing fields", http.MethodPost, "/api/v1/items", `{"name": "Elixir"}`, http.StatusBadRequest},
		{"quality above cap", http.MethodPost, "/api/v1/items", `{"name": "Elixir", "sell_in": 1, "quality": 51}`, http.StatusBadRequest},
		{"negative quality", http.MethodPost, "/api/v1/items", `{"name": "Elixir", "sell_in": 1, "quality": -1}`, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/v1/items?limit=zero", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/v1/items", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAdvanceConflict(t *testing.T) {
	s, _ := newTestServer(nil)

	rec := do(t, s, http.MethodPost, "/api/v1/simulation/advance", `{"days": 1}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(nil)
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	s, _ = newTestServer(errors.New("connection refused"))
	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"database":"DOWN"`) {
		t.Fatalf("expected database DOWN, got %s", rec.Body.String())
	}
}

func TestMetricsAndCORS(t *testing.T) {
	s, _ := newTestServer(nil)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected prometheus exposition, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodOptions, "/api/v1/items", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS preflight ok, got %d", rec.Code)
	}
}
