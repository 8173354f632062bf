package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/response"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"

	healthCheckTimeout = 2 * time.Second
)

type DBPinger interface {
	PingContext(ctx context.Context) error
}

type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks    []dependencyCheck
	log       *logger.Logger
	startedAt time.Time
}

func NewHealthHandler(db DBPinger, rdb RedisPinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checks: []dependencyCheck{
			{name: "database", ping: db.PingContext},
			{name: "redis", ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		log:       log,
		startedAt: time.Now().UTC(),
	}
}

type ServicesStatus struct {
	App      string `json:"app"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthData struct {
	ServicesStatus ServicesStatus   `json:"services_status"`
	LatencyMs      map[string]int64 `json:"latency_ms"`
	Uptime         string           `json:"uptime"`
	HeapAllocBytes uint64           `json:"heap_alloc_bytes"`
	Goroutines     int              `json:"goroutines"`
}

// HandleHealth pings every backing store and answers 503 if any is down.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	code := http.StatusOK
	statuses := make(map[string]string, len(h.checks))
	latency := make(map[string]int64, len(h.checks))

	for _, check := range h.checks {
		started := time.Now()
		err := check.ping(ctx)
		latency[check.name] = time.Since(started).Milliseconds()

		if err != nil {
			h.log.Warn("Health check failed", "dependency", check.name, "error", err)
			statuses[check.name] = statusDown
			code = http.StatusServiceUnavailable
			continue
		}
		statuses[check.name] = statusUp
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response.WriteJSON(w, code, response.Success(HealthData{
		ServicesStatus: ServicesStatus{
			App:      statusUp,
			Database: statuses["database"],
			Redis:    statuses["redis"],
		},
		LatencyMs:      latency,
		Uptime:         time.Since(h.startedAt).Round(time.Second).String(),
		HeapAllocBytes: mem.HeapAlloc,
		Goroutines:     runtime.NumGoroutine(),
	}))
}
