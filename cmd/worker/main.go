package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/app"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/customers"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/cache"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/db"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/reports"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, sweeps run uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	customersService := customers.NewService(logger, customers.NewRepository(pool))
	salesService := sales.NewService(logger, sales.NewRepository(pool), customersService, reportCache)
	tendersService := tenders.NewService(logger, tenders.NewRepository(pool), reportCache)
	reportsService := reports.NewService(logger, reports.NewRepository(pool), reportCache, cfg.RecentFeedLimit)

	quoteExpiry := &jobs.QuoteExpiryJob{Sales: salesService, Logger: logger}
	eventOverdue := &jobs.EventOverdueJob{Tenders: tendersService, Logger: logger}
	reportWarmup := &jobs.ReportWarmupJob{Reports: reportsService, Logger: logger}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskQuoteExpirySweep, Handler: quoteExpiry.Handle},
			{Type: jobs.TaskEventOverdueSweep, Handler: eventOverdue.Handle},
			{Type: jobs.TaskReportWarmup, Handler: reportWarmup.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: jobs.NewQuoteExpiryTask()},
			{Spec: "30 3 * * *", Task: jobs.NewEventOverdueTask()},
			{Spec: "0 */4 * * *", Task: jobs.NewReportWarmupTask()},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
