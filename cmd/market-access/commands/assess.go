package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradebarrier/market-access/backend/internal/assessment"
	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/database"
	"github.com/tradebarrier/market-access/backend/pkg/httputil"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
	"github.com/tradebarrier/market-access/backend/pkg/redis"
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run one economic assessment",
	Long: `Runs the economic assessment calculator once against the configured
trade table and prints the report as JSON.

Example:
  go run ./cmd/market-access assess --country "Russian Federation" --codes 0105,0207 --product Poultry
  go run ./cmd/market-access assess --country Azerbaijan --codes 7304,7306 --product "Steel pipes" --year 2018`,
	RunE: runAssess,
}

var (
	assessCountry string
	assessCodes   []string
	assessProduct string
	assessYear    string
)

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVar(&assessCountry, "country", "", "partner country name (required)")
	assessCmd.Flags().StringSliceVar(&assessCodes, "codes", nil, "HS commodity codes on the barrier")
	assessCmd.Flags().StringVar(&assessProduct, "product", "", "product display name")
	assessCmd.Flags().StringVar(&assessYear, "year", "", "terminal year (default: most recent fully reported)")
	assessCmd.MarkFlagRequired("country")
}

func runAssess(cmd *cobra.Command, args []string) error {
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

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	httpClient := httputil.New(log, cfg.Comtrade.Timeout).DisableRetry().WithRateLimit(cfg.Comtrade.RatePerSec)
	cache := redis.NewCache(redisClient, "")
	resolver := comtrade.NewResolver(httpClient, cache, cfg.Comtrade)
	store := comtrade.NewTradeRepository(db.Pool)
	client := comtrade.NewClient(store, resolver, log)
	calculator := assessment.NewCalculator(client, log)

	report, err := calculator.Calculate(context.Background(), contracts.Barrier{
		CommodityCodes: assessCodes,
		Product:        assessProduct,
		Country1:       assessCountry,
		Year:           assessYear,
	})
	if err != nil {
		return fmt.Errorf("assessment: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
