package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradebarrier/market-access/backend/internal/api"
	"github.com/tradebarrier/market-access/backend/internal/api/handlers"
	"github.com/tradebarrier/market-access/backend/internal/assessment"
	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/database"
	"github.com/tradebarrier/market-access/backend/pkg/httputil"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
	"github.com/tradebarrier/market-access/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health            - Health check
  POST /api/assessments   - Run the economic assessment for a barrier

Example:
  go run ./cmd/market-access api
  go run ./cmd/market-access api --port 8085`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to Postgres
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// 4. Connect to Redis (optional cache)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	// 5. Wire the calculator. The pipeline performs no retries; a failed
	// area-list fetch surfaces to the caller, who decides whether to rerun
	// the calculation.
	httpClient := httputil.New(log, cfg.Comtrade.Timeout).DisableRetry().WithRateLimit(cfg.Comtrade.RatePerSec)
	// The area documents are stored under their canonical comtrade-api:<url>
	// keys, shared with any other consumer of the same reference data.
	cache := redis.NewCache(redisClient, "")
	resolver := comtrade.NewResolver(httpClient, cache, cfg.Comtrade)
	store := comtrade.NewTradeRepository(db.Pool)
	client := comtrade.NewClient(store, resolver, log)
	calculator := assessment.NewCalculator(client, log)

	// 6. Build the HTTP surface
	assessmentHandler := handlers.NewAssessmentHandler(calculator, log)
	healthHandler := handlers.NewHealthHandler(db, redisClient, log)
	router := api.NewRouter(assessmentHandler, healthHandler, log)
	server := api.New(cfg, log, router)

	// 7. Start and wait for shutdown signal
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
