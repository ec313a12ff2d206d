package assessment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

// DefaultCountry2 is the home side of the assessment when the barrier does
// not name one.
const DefaultCountry2 = "United Kingdom"

// Calculator runs the automated economic assessment pipeline: code
// validation, year-window selection, trade fetches, aggregation, metric
// computation and report formatting. One call is one pipeline; all state is
// request-scoped.
type Calculator struct {
	client   *comtrade.Client
	selector *YearSelector
	logger   *logger.Logger
}

// NewCalculator creates a Calculator over the given comtrade client.
func NewCalculator(client *comtrade.Client, log *logger.Logger) *Calculator {
	return &Calculator{
		client:   client,
		selector: NewYearSelector(client),
		logger:   log,
	}
}

// Calculate produces the assessment report for one barrier descriptor.
func (c *Calculator) Calculate(ctx context.Context, barrier contracts.Barrier) (*Report, error) {
	country2 := barrier.Country2
	if country2 == "" {
		country2 = DefaultCountry2
	}

	country1 := comtrade.CanonicalName(barrier.Country1)
	country2 = comtrade.CanonicalName(country2)

	warnings := []string{}

	cleaned, codeWarning := CleanCodes(barrier.CommodityCodes)
	if codeWarning != "" {
		warnings = append(warnings, codeWarning)
	}

	requestedYear := parseYear(barrier.Year)

	window, err := c.selector.Select(ctx, country1, country2, requestedYear)
	if err != nil {
		return nil, err
	}

	if requestedYear != 0 && window[0] != requestedYear {
		warnings = append(warnings, fmt.Sprintf(
			"Your chosen ending year %d was not available. Years %s were downloaded instead.",
			requestedYear, joinYears(window)))
	}

	partners := []string{country1, country2, contracts.WorldPartner}

	var affected []contracts.TradeRow
	if len(cleaned) > 0 {
		affected, err = c.client.Get(ctx, window, partners, cleaned, nil)
		if err != nil {
			return nil, err
		}
	}

	all, err := c.client.Get(ctx, window, partners, nil, nil)
	if err != nil {
		return nil, err
	}

	relationships := relationshipList(country1, country2)

	aggregateData := aggregateFlows(affected, relationships, window, barrier.Product)
	aggregateData = append(aggregateData, aggregateFlows(all, relationships, window, TotalProductsLabel)...)
	rawData := aggregateCommodities(affected, relationships, window)

	metrics := computeMetrics(affected, all, country1, country2, len(window))

	c.logger.WithFields(map[string]interface{}{
		"country1": country1,
		"country2": country2,
		"codes":    cleaned,
		"years":    window,
	}).Info("Assessment calculated")

	report := &Report{
		Version:         ReportVersion,
		CommodityCodes:  cleaned,
		Product:         barrier.Product,
		StartYear:       strconv.Itoa(window[len(window)-1]),
		EndYear:         strconv.Itoa(window[0]),
		Years:           yearStrings(window),
		Warnings:        warnings,
		ExportPotential: buildExportPotential(metrics, country1, country2),
		Calculations:    metrics,
		AggregateData:   aggregateData,
		RawData:         rawData,
	}
	return report, nil
}

// relationshipList is the fixed set of ten flows the aggregator reports on,
// import side first, each side ordered bilateral, partner-world, UK-world,
// world-world, partner-out.
func relationshipList(country1, country2 string) []Relationship {
	world := contracts.WorldPartner
	return []Relationship{
		{Direction: contracts.FlowImport, Partner: country2, Reporter: country1},
		{Direction: contracts.FlowImport, Partner: world, Reporter: country1},
		{Direction: contracts.FlowImport, Partner: country2},
		{Direction: contracts.FlowImport, Partner: world},
		{Direction: contracts.FlowImport, Partner: country1},
		{Direction: contracts.FlowExport, Partner: country1, Reporter: country2},
		{Direction: contracts.FlowExport, Partner: country1},
		{Direction: contracts.FlowExport, Partner: world, Reporter: country2},
		{Direction: contracts.FlowExport, Partner: world},
		{Direction: contracts.FlowExport, Partner: world, Reporter: country1},
	}
}

func buildExportPotential(m Metrics, country1, country2 string) ExportPotential {
	impUKGlobal := valid(m.Import.UKGlobalRCA)
	expUKGlobal := valid(m.Export.UKGlobalRCA)
	impBilateral := valid(m.Import.BilateralRCA)
	expBilateral := valid(m.Export.BilateralRCA)
	impDiff := valid(m.Import.RCADifference)
	expDiff := valid(m.Export.RCADifference)
	impPartner := valid(m.Import.PartnerGlobalRCA)
	expPartner := valid(m.Export.PartnerGlobalRCA)
	impGlobalDiff := valid(m.Import.GlobalRCADifference)
	expGlobalDiff := valid(m.Export.GlobalRCADifference)

	marketSize := valueRange(m.Import.PartnerFromWorld, m.Export.PartnerFromWorld)
	marketShare := percentRange(m.Import.MarketShare, m.Export.MarketShare, 1)

	return ExportPotential{
		UKGlobalRCA:                 rcaLabel(impUKGlobal, expUKGlobal),
		BilateralRCA:                rcaLabel(impBilateral, expBilateral),
		UKRCADifference:             rcaDiffLabel(impDiff, expDiff, country1, country2),
		PartnerGlobalRCA:            rcaLabel(impPartner, expPartner),
		GlobalRCADifference:         rcaDiffGlobalLabel(impGlobalDiff, expGlobalDiff, country1, country2),
		ImportMarketSize:            fmt.Sprintf("%s (UK has %s)", marketSize, marketShare),
		ProductSharePartnerImport:   percentRange(m.Import.ProductSharePartnerImport, m.Export.ProductSharePartnerImport, 1),
		UKExportsWorld:              valueRange(m.Import.WorldFromUK, m.Export.WorldFromUK),
		UKExportsAffected:           valueRange(m.Import.PartnerFromUK, m.Export.PartnerFromUK),
		ProductShareUKExportWorld:   percentRange(m.Import.ProductShareUKExportWorld, m.Export.ProductShareUKExportWorld, 1),
		ProductShareUKExportPartner: percentRange(m.Import.ProductShareUKExportPartner, m.Export.ProductShareUKExportPartner, 1),
	}
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseYear reads the optional terminal year. Anything unparsable is treated
// as not supplied.
func parseYear(s string) int {
	if s == "" {
		return 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return year
}

func yearStrings(window []int) []string {
	out := make([]string, 0, len(window))
	for _, y := range window {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func joinYears(window []int) string {
	return strings.Join(yearStrings(window), ", ")
}
