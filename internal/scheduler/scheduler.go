package scheduler

import (
	"context"
	"log/slog"
	"time"

	"ugc_tracker/internal/domain"
)

// Reporter produces a dashboard snapshot.
type Reporter interface {
	Report(ctx context.Context) (*domain.Dashboard, error)
}

// Scheduler periodically snapshots the dashboard and logs the totals
// whenever they move.
type Scheduler struct {
	reporter Reporter
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	last *domain.Dashboard
}

func NewScheduler(reporter Reporter, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		reporter: reporter,
		interval: interval,
		timeout:  30 * time.Second,
		logger:   logger.With("component", "dashboard_reporter"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("dashboard reporter started", "interval", s.interval)

	s.runReport(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dashboard reporter stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runReport(ctx)
		}
	}
}

// runReport is only called from the Start loop, so last needs no lock.
func (s *Scheduler) runReport(ctx context.Context) {
	reportCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d, err := s.reporter.Report(reportCtx)
	if err != nil {
		s.logger.Error("report failed", "error", err)
		return
	}
	if d == nil {
		return
	}

	if s.last != nil && *s.last == *d {
		s.logger.Debug("dashboard unchanged")
		return
	}

	attrs := []any{
		"views", d.Views,
		"likes", d.Likes,
		"shares", d.Shares,
		"matched", d.MatchedCount,
		"revenue", d.Revenue,
		"pending_revenue", d.PendingRevenue,
		"pending_approvals", d.PendingApprovals,
	}
	if s.last != nil {
		attrs = append(attrs,
			"views_delta", d.Views-s.last.Views,
			"revenue_delta", d.Revenue-s.last.Revenue,
			"pending_approvals_delta", d.PendingApprovals-s.last.PendingApprovals,
		)
	}
	s.logger.Info("dashboard snapshot", attrs...)

	snapshot := *d
	s.last = &snapshot
}
