package commands

import (
	"context"

	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type AdvanceDayCommand struct {
	Days int `json:"days"`
}

type AdvanceDayHandler struct {
	advanceUseCase *use_cases.AdvanceDayUseCase
	log            *logger.Logger
}

func NewAdvanceDayHandler(advanceUseCase *use_cases.AdvanceDayUseCase, log *logger.Logger) *AdvanceDayHandler {
	return &AdvanceDayHandler{
		advanceUseCase: advanceUseCase,
		log:            log,
	}
}

// Handle advances the stored inventory. A zero Days means a single day.
func (h *AdvanceDayHandler) Handle(ctx context.Context, cmd AdvanceDayCommand) (*simulation.AdvanceResult, error) {
	days := cmd.Days
	if days == 0 {
		days = 1
	}

	h.log.Info("Processing advance request", "days", days)

	result, err := h.advanceUseCase.Advance(ctx, days)
	if err != nil {
		h.log.Error("Advance failed", "error", err.Error(), "days", days)
		return nil, err
	}

	return result, nil
}
