package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/reports"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
)

// QuoteExpiryJob flips open quotes past their validity window to expired.
type QuoteExpiryJob struct {
	Sales  *sales.Service
	Logger *slog.Logger
}

// Handle processes quote expiry sweep tasks.
func (j *QuoteExpiryJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Sales == nil {
		return errors.New("quote expiry: handler not configured")
	}
	n, err := j.Sales.ExpireQuotes(ctx)
	if err != nil {
		j.logger().Error("quote expiry sweep failed", slog.Any("error", err))
		return err
	}
	if n > 0 {
		j.logger().Info("quotes expired", slog.Int64("count", n))
	}
	return nil
}

func (j *QuoteExpiryJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// EventOverdueJob flips pending tender milestones past their date to late.
type EventOverdueJob struct {
	Tenders *tenders.Service
	Logger  *slog.Logger
}

// Handle processes milestone overdue sweep tasks.
func (j *EventOverdueJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Tenders == nil {
		return errors.New("event overdue: handler not configured")
	}
	n, err := j.Tenders.MarkOverdueEvents(ctx)
	if err != nil {
		j.logger().Error("event overdue sweep failed", slog.Any("error", err))
		return err
	}
	if n > 0 {
		j.logger().Info("milestone events marked late", slog.Int("count", n))
	}
	return nil
}

func (j *EventOverdueJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

// ReportWarmupJob precomputes the current-month report.
type ReportWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	if err := j.Reports.Warm(ctx); err != nil {
		j.logger().Error("report warmup failed", slog.Any("error", err))
		return err
	}
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
