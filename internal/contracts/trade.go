package contracts

import "github.com/shopspring/decimal"

// Trade flow codes as stored in the comtrade trade table.
const (
	FlowCodeImport = 1
	FlowCodeExport = 2
)

// Trade flow labels used throughout the assessment pipeline.
const (
	FlowImport = "Import"
	FlowExport = "Export"
)

// TotalCommodity is the synthetic commodity code covering all goods. It is
// used as the denominator in share calculations and bypasses code validation.
const TotalCommodity = "TOTAL"

// WorldPartner is the sentinel area name for world totals.
const WorldPartner = "World"

// StoredRow is one fact row as returned by the trade store, before flow
// decoding and currency conversion.
type StoredRow struct {
	Year          int
	TradeFlowCode int
	Reporter      string
	Partner       string
	CommodityCode string
	Commodity     string
	TradeValueUSD decimal.Decimal
}

// TradeRow is a stored row enriched by the comtrade client: the flow code is
// decoded to "Import"/"Export" and the USD value converted to GBP using the
// pinned annual exchange-rate table.
type TradeRow struct {
	Year          int
	TradeFlow     string
	Reporter      string
	Partner       string
	CommodityCode string
	Commodity     string
	TradeValueUSD decimal.Decimal
	TradeValueGBP decimal.Decimal
}

// TradeQuery describes the predicate sets for one tabular query against the
// trade store. Empty ReporterCodes means no reporter restriction.
type TradeQuery struct {
	Years          []int
	CommodityCodes []string
	FlowCodes      []int
	PartnerCodes   []string
	ReporterCodes  []string
}

// Barrier is the descriptor the rest of the service hands to the calculator.
type Barrier struct {
	CommodityCodes []string `json:"commodity_codes"`
	Product        string   `json:"product"`
	Country1       string   `json:"country1"`
	Country2       string   `json:"country2"`
	Year           string   `json:"year,omitempty"`
}
