package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/hoangvn/nhatro/internal/auth"
	"github.com/hoangvn/nhatro/internal/billing"
	billingStore "github.com/hoangvn/nhatro/internal/billing/store"
	"github.com/hoangvn/nhatro/internal/config"
	"github.com/hoangvn/nhatro/internal/database"
	"github.com/hoangvn/nhatro/internal/expense"
	expenseStore "github.com/hoangvn/nhatro/internal/expense/store"
	nhatroHttp "github.com/hoangvn/nhatro/internal/http"
	authHandler "github.com/hoangvn/nhatro/internal/http/auth"
	billingHandler "github.com/hoangvn/nhatro/internal/http/billing"
	expenseHandler "github.com/hoangvn/nhatro/internal/http/expense"
	meterHandler "github.com/hoangvn/nhatro/internal/http/meter"
	propertyHandler "github.com/hoangvn/nhatro/internal/http/property"
	reportHandler "github.com/hoangvn/nhatro/internal/http/report"
	"github.com/hoangvn/nhatro/internal/importer/readings"
	"github.com/hoangvn/nhatro/internal/meter"
	meterStore "github.com/hoangvn/nhatro/internal/meter/store"
	"github.com/hoangvn/nhatro/internal/property"
	propertyStore "github.com/hoangvn/nhatro/internal/property/store"
	"github.com/hoangvn/nhatro/internal/report"
	reportStore "github.com/hoangvn/nhatro/internal/report/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.Secret == "" || cfg.Auth.Password == "" {
		slog.Error("AUTH_SECRET and AUTH_PASSWORD must be set")
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		authService     = auth.NewService(cfg.Auth.Secret, cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.TokenTTL)
		propertyService = property.NewService(propertyStore.New(db))
		meterService    = meter.NewService(meterStore.New(db))
		billingService  = billing.NewService(billingStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db))
		reportService   = report.NewService(reportStore.New(db))
		readingImporter = readings.NewImporter(meterService)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		propertyH = propertyHandler.NewHandler(propertyService)
		meterH    = meterHandler.NewHandler(meterService, readingImporter)
		billingH  = billingHandler.NewHandler(billingService)
		expenseH  = expenseHandler.NewHandler(expenseService)
		reportH   = reportHandler.NewHandler(reportService)
	)

	router := nhatroHttp.New(authService, authH, propertyH, meterH, billingH, expenseH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
