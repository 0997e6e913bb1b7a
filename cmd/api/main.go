package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imthegoodboy/veristamp/internal/analysis"
	"github.com/imthegoodboy/veristamp/internal/analysis/remote"
	"github.com/imthegoodboy/veristamp/internal/analysis/rekognition"
	"github.com/imthegoodboy/veristamp/internal/api"
	"github.com/imthegoodboy/veristamp/internal/api/middleware"
	"github.com/imthegoodboy/veristamp/internal/audit"
	"github.com/imthegoodboy/veristamp/internal/config"
	"github.com/imthegoodboy/veristamp/internal/database"
	"github.com/imthegoodboy/veristamp/internal/ledger/polygon"
	"github.com/imthegoodboy/veristamp/internal/ratelimit"
	"github.com/imthegoodboy/veristamp/internal/repository"
	"github.com/imthegoodboy/veristamp/internal/service"
	"github.com/imthegoodboy/veristamp/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting VeriStamp API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("detector", cfg.DetectorType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.NewPgxPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	contentRepo := repository.NewContentRepository(pool)
	provenanceRepo := repository.NewProvenanceRepository(pool)
	checkRepo := repository.NewCheckRepository(pool)
	statusLogRepo := repository.NewStatusLogRepository(pool)

	// Detection
	assessor, err := newAssessor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Ledger
	ledgerClient, err := newLedgerClient(cfg, logger)
	if err != nil {
		return err
	}

	auditLogger := audit.NewSlogLogger(logger)

	// Services
	contentService := service.NewContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		assessor, ledgerClient, storage.NewSyntheticLocator(),
	).
		WithFlagThreshold(cfg.FlagThreshold).
		WithTimeouts(cfg.DetectionTimeout, cfg.LedgerTimeout).
		WithAudit(auditLogger)

	verifyService := service.NewVerifyService(contentRepo, checkRepo).
		WithAttestor(ledgerClient).
		WithAudit(auditLogger)

	feeService := service.NewFeeService(ledgerClient)
	statsService := service.NewStatsService(contentRepo, ledgerClient)

	limiter := ratelimit.NewRateLimiter(pool, cfg.RateLimitWindow)

	// Router
	router := api.NewRouter(logger, &api.Dependencies{
		ContentService: contentService,
		VerifyService:  verifyService,
		FeeService:     feeService,
		StatsService:   statsService,
		RateLimiter:    limiter,
		RateLimit: middleware.RateLimiterConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		},
		DB: pool,
	})
	router.Setup()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}

// newAssessor builds the configured detection backend. The heuristic
// analyzer is always the fallback for backends that cannot handle a
// given content kind.
func newAssessor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (analysis.Assessor, error) {
	heuristic := analysis.NewAnalyzer(cfg.ScoreSeed)

	switch cfg.DetectorType {
	case "heuristic":
		return heuristic, nil

	case "remote":
		return remote.NewClient(remote.Config{
			BaseURL:    cfg.DetectionURL,
			Timeout:    cfg.DetectionTimeout,
			RetryCount: 2,
		}), nil

	case "rekognition":
		detector, err := rekognition.NewDetector(ctx, rekognition.Config{Region: cfg.AWSRegion}, heuristic)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rekognition detector: %w", err)
		}
		return detector, nil
	}

	logger.Warn("unknown detector type, using heuristic",
		slog.String("detector", cfg.DetectorType),
	)
	return heuristic, nil
}

func newLedgerClient(cfg *config.Config, logger *slog.Logger) (*polygon.Client, error) {
	client, err := polygon.New(polygon.Config{
		RPCURL:          cfg.LedgerRPCURL,
		ContractAddress: cfg.LedgerContract,
		PrivateKey:      cfg.LedgerPrivateKey,
		ChainID:         cfg.LedgerChainID,
		GasLimit:        cfg.LedgerGasLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger client: %w", err)
	}

	if cfg.LedgerPrivateKey == "" {
		logger.Warn("no ledger signing key configured, records will carry synthetic references")
	}

	return client, nil
}
