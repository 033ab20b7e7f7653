package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/app"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/expenses"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/finance"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/customers"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/products"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/salespeople"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/masterdata/suppliers"
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
		logger.Warn("redis unavailable, reports served uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	customersService := customers.NewService(logger, customers.NewRepository(pool))
	productsService := products.NewService(logger, products.NewRepository(pool))
	salespeopleService := salespeople.NewService(logger, salespeople.NewRepository(pool))
	suppliersService := suppliers.NewService(logger, suppliers.NewRepository(pool))

	financeService := finance.NewService(logger, finance.NewRepository(pool))
	salesService := sales.NewService(logger, sales.NewRepository(pool), customersService, reportCache)
	tendersService := tenders.NewService(logger, tenders.NewRepository(pool), reportCache)
	expensesService := expenses.NewService(logger, expenses.NewRepository(pool), financeService, reportCache)
	reportsService := reports.NewService(logger, reports.NewRepository(pool), reportCache, cfg.RecentFeedLimit)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobsHandler := jobs.NewHandler(asynq.NewInspector(redisOpts), logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SalesHandler:       sales.NewHandler(logger, salesService),
		TendersHandler:     tenders.NewHandler(logger, tendersService),
		ExpensesHandler:    expenses.NewHandler(logger, expensesService),
		FinanceHandler:     finance.NewHandler(logger, financeService),
		ReportsHandler:     reports.NewHandler(logger, reportsService),
		CustomersHandler:   customers.NewHandler(logger, customersService),
		ProductsHandler:    products.NewHandler(logger, productsService),
		SalespeopleHandler: salespeople.NewHandler(logger, salespeopleService),
		SuppliersHandler:   suppliers.NewHandler(logger, suppliersService),
		JobsHandler:        jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
