package comtrade

import (
	"context"
	"fmt"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

// Client translates assessment queries into trade-store rows: it resolves
// country names to area codes, executes the tabular query, decodes flow codes
// and converts USD values to GBP.
type Client struct {
	store    contracts.TradeStore
	resolver *Resolver
	logger   *logger.Logger
}

// NewClient creates a comtrade client over a trade store and a name resolver.
func NewClient(store contracts.TradeStore, resolver *Resolver, log *logger.Logger) *Client {
	return &Client{
		store:    store,
		resolver: resolver,
		logger:   log,
	}
}

// Resolver returns the name resolver backing this client.
func (c *Client) Resolver() *Resolver {
	return c.resolver
}

// Get fetches import and export rows for the given years and partner names.
// commodityCodes nil or empty means the TOTAL aggregate; reporters nil means
// no reporter restriction.
func (c *Client) Get(ctx context.Context, years []int, partners []string, commodityCodes []string, reporters []string) ([]contracts.TradeRow, error) {
	if len(commodityCodes) == 0 {
		commodityCodes = []string{contracts.TotalCommodity}
	}

	partnerCodes := make([]string, 0, len(partners))
	for _, name := range partners {
		code, err := c.resolver.PartnerCode(ctx, name)
		if err != nil {
			return nil, err
		}
		partnerCodes = append(partnerCodes, code)
	}

	var reporterCodes []string
	for _, name := range reporters {
		code, err := c.resolver.ReporterCode(ctx, name)
		if err != nil {
			return nil, err
		}
		reporterCodes = append(reporterCodes, code)
	}

	query := contracts.TradeQuery{
		Years:          years,
		CommodityCodes: commodityCodes,
		FlowCodes:      []int{contracts.FlowCodeImport, contracts.FlowCodeExport},
		PartnerCodes:   partnerCodes,
		ReporterCodes:  reporterCodes,
	}

	stored, err := c.store.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("trade store query: %w", err)
	}

	rows := make([]contracts.TradeRow, 0, len(stored))
	for _, s := range stored {
		flow, err := decodeFlow(s.TradeFlowCode)
		if err != nil {
			return nil, err
		}

		gbp, err := usdToGBP(s.TradeValueUSD, s.Year)
		if err != nil {
			return nil, err
		}

		rows = append(rows, contracts.TradeRow{
			Year:          s.Year,
			TradeFlow:     flow,
			Reporter:      s.Reporter,
			Partner:       s.Partner,
			CommodityCode: s.CommodityCode,
			Commodity:     s.Commodity,
			TradeValueUSD: s.TradeValueUSD,
			TradeValueGBP: gbp,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"years":    years,
		"partners": partners,
		"codes":    len(commodityCodes),
		"rows":     len(rows),
	}).Debug("Fetched trade rows")

	return rows, nil
}

func decodeFlow(code int) (string, error) {
	switch code {
	case contracts.FlowCodeImport:
		return contracts.FlowImport, nil
	case contracts.FlowCodeExport:
		return contracts.FlowExport, nil
	default:
		return "", fmt.Errorf("unknown trade flow code %d", code)
	}
}
