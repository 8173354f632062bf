package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type DueAdvancer interface {
	AdvanceIfDue(ctx context.Context) (*simulation.AdvanceResult, error)
}

// DayScheduler ages the stored inventory once per UTC calendar day. It checks
// on start and then on every tick; the advancer decides whether a day is due.
type DayScheduler struct {
	advancer DueAdvancer
	logger   *logger.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewDayScheduler(advancer DueAdvancer, logger *logger.Logger, interval time.Duration) *DayScheduler {
	return &DayScheduler{
		advancer: advancer,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *DayScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting day scheduler", "interval", s.interval.String())

	s.advanceIfDue(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Day scheduler stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Day scheduler stopped")
			return
		case <-ticker.C:
			s.advanceIfDue(ctx)
		}
	}
}

func (s *DayScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *DayScheduler) advanceIfDue(ctx context.Context) {
	result, err := s.advancer.AdvanceIfDue(ctx)
	switch {
	case err == nil:
		s.logger.Info("Scheduled advance completed", "to_day", result.ToDay)
	case errors.Is(err, domainErrors.ErrDayAlreadyAdvanced):
		s.logger.Debug("Inventory already advanced today")
	case errors.Is(err, domainErrors.ErrAdvanceInProgress):
		s.logger.Info("Advance in progress elsewhere, skipping")
	default:
		s.logger.Error("Scheduled advance failed", "error", err)
	}
}
