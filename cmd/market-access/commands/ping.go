package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/database"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
	"github.com/tradebarrier/market-access/backend/pkg/redis"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check Postgres and Redis connectivity",
	Long: `Verifies that the trade database and the cache are reachable with the
current configuration and prints pool statistics.

Example:
  go run ./cmd/market-access ping`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"response_time": health.ResponseTime,
		"total_conns":   health.Stats.TotalConns,
		"max_conns":     health.Stats.MaxConns,
	}).Info("Postgres OK")

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	if redisClient.Enabled() {
		log.Info("Redis OK")
	} else {
		log.Warn("Redis disabled; area lookups will not be cached across requests")
	}

	return nil
}
