package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/application/commands"
	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/response"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const MaxPreviewItems = 1000

type DayAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceDayCommand) (*simulation.AdvanceResult, error)
}

type StateReader interface {
	GetState(ctx context.Context) (*use_cases.InventoryState, error)
}

type SimulationHandler struct {
	advancer DayAdvancer
	state    StateReader
	log      *logger.Logger
}

func NewSimulationHandler(advancer DayAdvancer, state StateReader, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		advancer: advancer,
		state:    state,
		log:      log,
	}
}

type advanceRequest struct {
	Days int `json:"days"`
}

// HandleAdvance accepts an empty body as a one-day advance.
func (h *SimulationHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}

	result, err := h.advancer.Handle(r.Context(), commands.AdvanceDayCommand{Days: req.Days})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, result)
}

type StateResponse struct {
	CurrentDay     int               `json:"current_day"`
	LastAdvancedAt *string           `json:"last_advanced_at"`
	Summary        inventory.Summary `json:"summary"`
}

func (h *SimulationHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.state.GetState(r.Context())
	if err != nil {
		h.log.Error("Failed to load simulation state", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	resp := StateResponse{
		CurrentDay: state.State.CurrentDay,
		Summary:    state.Summary,
	}
	if state.State.LastAdvancedAt != nil {
		formatted := state.State.LastAdvancedAt.UTC().Format(time.RFC3339)
		resp.LastAdvancedAt = &formatted
	}

	response.WriteSuccess(w, resp)
}

type previewItem struct {
	Name    string `json:"name"`
	SellIn  int    `json:"sell_in"`
	Quality int    `json:"quality"`
}

type previewRequest struct {
	Items []previewItem `json:"items"`
	Days  *int          `json:"days"`
}

type PreviewResponse struct {
	Days         []inventory.Snapshot `json:"days"`
	FinalSummary inventory.Summary    `json:"final_summary"`
}

// HandlePreview runs the engine over the posted items without touching storage.
func (h *SimulationHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}

	days := 1
	if req.Days != nil {
		days = *req.Days
	}
	if days < 0 || days > simulation.MaxDaysPerAdvance {
		response.WriteDomainError(w, fmt.Errorf("%w: %d (allowed 0..%d)", domainErrors.ErrInvalidDays, days, simulation.MaxDaysPerAdvance))
		return
	}

	if len(req.Items) > MaxPreviewItems {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"items": fmt.Sprintf("At most %d items can be previewed", MaxPreviewItems),
		})
		return
	}

	items := make([]*inventory.Item, 0, len(req.Items))
	for i, pi := range req.Items {
		item, err := inventory.NewItem(pi.Name, pi.SellIn, pi.Quality)
		if err != nil {
			response.WriteDomainError(w, fmt.Errorf("item %d: %w", i, err))
			return
		}
		items = append(items, item)
	}

	snapshots := inventory.Simulate(items, days)

	response.WriteSuccess(w, PreviewResponse{
		Days:         snapshots,
		FinalSummary: inventory.Summarize(items),
	})
}
