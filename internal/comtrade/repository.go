package comtrade

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
)

// TradeRepository implements contracts.TradeStore against the comtrade trade
// table populated by the ingestion job.
type TradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

// Query executes one tabular query with the given predicate sets. Results are
// ordered by the grouping tuple so downstream output is deterministic.
func (r *TradeRepository) Query(ctx context.Context, q contracts.TradeQuery) ([]contracts.StoredRow, error) {
	query := `
		SELECT period, trade_flow_code, reporter, partner, commodity_code, commodity, trade_value_usd
		FROM comtrade.trade_records
		WHERE commodity_code = ANY($1)
		  AND period = ANY($2)
		  AND trade_flow_code = ANY($3)
		  AND partner_code = ANY($4)
	`
	args := []interface{}{q.CommodityCodes, q.Years, q.FlowCodes, q.PartnerCodes}

	if len(q.ReporterCodes) > 0 {
		query += "  AND reporter_code = ANY($5)\n"
		args = append(args, q.ReporterCodes)
	}
	query += "ORDER BY period, trade_flow_code, reporter, partner, commodity_code"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trade records: %w", err)
	}
	defer rows.Close()

	var result []contracts.StoredRow
	for rows.Next() {
		var row contracts.StoredRow
		if err := rows.Scan(
			&row.Year, &row.TradeFlowCode, &row.Reporter, &row.Partner,
			&row.CommodityCode, &row.Commodity, &row.TradeValueUSD,
		); err != nil {
			return nil, fmt.Errorf("scan trade record: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
