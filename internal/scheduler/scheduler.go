package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"biztrack/internal/core"
)

// Scheduler runs recurring background jobs.
type Scheduler struct {
	cron     *cron.Cron
	metrics  core.MetricsService
	cronExpr string
	logger   *zap.Logger
}

// New creates a scheduler that logs a low-stock digest on the given
// cron expression.
func New(metrics core.MetricsService, cronExpr string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		metrics:  metrics,
		cronExpr: cronExpr,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("lowStockCron", s.cronExpr))

	if _, err := s.cron.AddFunc(s.cronExpr, s.lowStockDigest); err != nil {
		s.logger.Error("failed to schedule low-stock digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop. Running jobs finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) lowStockDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products, err := s.metrics.LowStock(ctx)
	if err != nil {
		s.logger.Error("failed to compute low-stock digest", zap.Error(err))
		return
	}
	if len(products) == 0 {
		s.logger.Info("low-stock digest: all products above threshold")
		return
	}

	for _, p := range products {
		s.logger.Warn("low stock",
			zap.String("product", p.Name),
			zap.String("sku", p.SKU),
			zap.Int("stock", p.Stock),
		)
	}
}
