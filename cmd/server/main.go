package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/config"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/repository/mongodb"
	"github.com/mamadbah2/feedlot/internal/repository/sheets"
	"github.com/mamadbah2/feedlot/internal/scheduler"
	"github.com/mamadbah2/feedlot/internal/server/handlers"
	"github.com/mamadbah2/feedlot/internal/server/router"
	advisorsvc "github.com/mamadbah2/feedlot/internal/service/advisor"
	reportingsvc "github.com/mamadbah2/feedlot/internal/service/reporting"
	scenariosvc "github.com/mamadbah2/feedlot/internal/service/scenario"
	"github.com/mamadbah2/feedlot/pkg/clients/anthropic"
	"github.com/mamadbah2/feedlot/pkg/clients/gemini"
	whatsappclient "github.com/mamadbah2/feedlot/pkg/clients/whatsapp"
	"github.com/mamadbah2/feedlot/pkg/logger"
)

// store is what both scenario persistence and simulation history need.
type store interface {
	scenariosvc.Store
	handlers.SimulationStore
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st store
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		st = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, keeping scenarios in memory")
		st = memory.NewStore()
	}

	var writer reportingsvc.RowWriter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		writer = sheetsRepo
	} else {
		baseLogger.Info("google sheets not configured, projection export disabled")
	}

	generator, provider := newGenerator(ctx, cfg.AI, baseLogger)

	scenarioSvc := scenariosvc.NewService(st, logger.Named(baseLogger, "svc.scenario"))
	reportingSvc := reportingsvc.NewService(writer, scenarioSvc, logger.Named(baseLogger, "svc.reporting"))
	advisorSvc := advisorsvc.NewService(generator, provider, logger.Named(baseLogger, "svc.advisor"))

	handler := handlers.NewSimulationHandler(scenarioSvc, advisorSvc, reportingSvc, st, logger.Named(baseLogger, "handlers.simulation"))
	engine := router.New(handler, logger.Named(baseLogger, "router"))

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
	}

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid reporting timezone", zap.Error(err))
	}
	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, notifier, cfg.WhatsApp.DigestRecipient, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newGenerator picks the analysis provider. Without any key the advisor always falls back.
func newGenerator(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (advisorsvc.Generator, string) {
	useGemini := cfg.Provider == config.ProviderGemini || (cfg.Provider == config.ProviderAuto && cfg.GeminiKey != "")
	useAnthropic := cfg.Provider == config.ProviderAnthropic || (cfg.Provider == config.ProviderAuto && cfg.GeminiKey == "" && cfg.AnthropicKey != "")

	switch {
	case useGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal("failed to init gemini client", zap.Error(err))
		}
		log.Info("gemini analysis enabled", zap.String("model", cfg.GeminiModel))
		return client, config.ProviderGemini
	case useAnthropic:
		log.Info("anthropic analysis enabled")
		return anthropic.NewClient(cfg.AnthropicKey, ""), config.ProviderAnthropic
	default:
		log.Warn("no ai api key configured, analysis will return the fallback message")
		return nil, ""
	}
}
