package assessment

import (
	"github.com/shopspring/decimal"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
)

// sideAggregates holds the ten averaged trade-flow scalars for one side of
// the trade relationship (all imports, or all exports).
//
// Slot semantics are uniform across sides:
//
//	bilateral / bilateralTotal      UK <-> partner, affected / all products
//	partnerIn / partnerInTotal      flows into the partner from the world
//	ukWorld / ukWorldTotal          UK <-> world
//	world / worldTotal              world <-> world
//	partnerOut / partnerOutTotal    flows out of the partner to the world
//
// The import side measures each flow from the importer's reports, the export
// side from the exporter's.
type sideAggregates struct {
	bilateral       decimal.Decimal
	bilateralTotal  decimal.Decimal
	partnerIn       decimal.Decimal
	partnerInTotal  decimal.Decimal
	ukWorld         decimal.Decimal
	ukWorldTotal    decimal.Decimal
	world           decimal.Decimal
	worldTotal      decimal.Decimal
	partnerOut      decimal.Decimal
	partnerOutTotal decimal.Decimal
}

// SideMetrics holds the computed metrics for one side. All ratios carry the
// denominator-zero guard: a zero denominator yields exactly zero, which the
// formatter treats as a value, not as missing.
type SideMetrics struct {
	BilateralRCA                decimal.Decimal `json:"bilateral_rca"`
	UKGlobalRCA                 decimal.Decimal `json:"uk_global_rca"`
	RCADifference               decimal.Decimal `json:"rca_difference"`
	PartnerGlobalRCA            decimal.Decimal `json:"partner_global_rca"`
	GlobalRCADifference         decimal.Decimal `json:"global_rca_difference"`
	PartnerFromWorld            decimal.Decimal `json:"partner_from_world"`
	WorldFromUK                 decimal.Decimal `json:"world_from_uk"`
	PartnerFromUK               decimal.Decimal `json:"partner_from_uk"`
	MarketShare                 decimal.Decimal `json:"market_share"`
	UKShareOfImportMarket       decimal.Decimal `json:"uk_share_of_import_market"`
	ProductSharePartnerImport   decimal.Decimal `json:"product_share_partner_import"`
	ProductShareUKExportWorld   decimal.Decimal `json:"product_share_uk_export_world"`
	ProductShareUKExportPartner decimal.Decimal `json:"product_share_uk_export_partner"`
}

// Metrics is the full calculation output, one block per side.
type Metrics struct {
	Import SideMetrics `json:"import"`
	Export SideMetrics `json:"export"`
}

// avgTrade restricts rows to the given filter, sums GBP per the whole
// window and averages over the window length. An empty filter result yields
// zero. reporter "" means no reporter restriction (world total).
func avgTrade(rows []contracts.TradeRow, partner, direction, reporter string, numYears int) decimal.Decimal {
	if numYears == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, row := range rows {
		if row.TradeFlow != direction || row.Partner != partner {
			continue
		}
		if reporter != "" && row.Reporter != reporter {
			continue
		}
		total = total.Add(row.TradeValueGBP)
	}
	return total.Div(decimal.NewFromInt(int64(numYears)))
}

// computeMetrics derives the twenty averaged scalars and all RCA and share
// metrics from the two fetched row sets. country1 is the partner country,
// country2 the UK side; both already canonical comtrade names.
func computeMetrics(affected, all []contracts.TradeRow, country1, country2 string, numYears int) Metrics {
	world := contracts.WorldPartner

	imports := sideAggregates{
		bilateral:       avgTrade(affected, country2, contracts.FlowImport, country1, numYears),
		bilateralTotal:  avgTrade(all, country2, contracts.FlowImport, country1, numYears),
		partnerIn:       avgTrade(affected, world, contracts.FlowImport, country1, numYears),
		partnerInTotal:  avgTrade(all, world, contracts.FlowImport, country1, numYears),
		ukWorld:         avgTrade(affected, country2, contracts.FlowImport, "", numYears),
		ukWorldTotal:    avgTrade(all, country2, contracts.FlowImport, "", numYears),
		world:           avgTrade(affected, world, contracts.FlowImport, "", numYears),
		worldTotal:      avgTrade(all, world, contracts.FlowImport, "", numYears),
		partnerOut:      avgTrade(affected, country1, contracts.FlowImport, "", numYears),
		partnerOutTotal: avgTrade(all, country1, contracts.FlowImport, "", numYears),
	}

	exports := sideAggregates{
		bilateral:       avgTrade(affected, country1, contracts.FlowExport, country2, numYears),
		bilateralTotal:  avgTrade(all, country1, contracts.FlowExport, country2, numYears),
		partnerIn:       avgTrade(affected, country1, contracts.FlowExport, "", numYears),
		partnerInTotal:  avgTrade(all, country1, contracts.FlowExport, "", numYears),
		ukWorld:         avgTrade(affected, world, contracts.FlowExport, country2, numYears),
		ukWorldTotal:    avgTrade(all, world, contracts.FlowExport, country2, numYears),
		world:           avgTrade(affected, world, contracts.FlowExport, "", numYears),
		worldTotal:      avgTrade(all, world, contracts.FlowExport, "", numYears),
		partnerOut:      avgTrade(affected, world, contracts.FlowExport, country1, numYears),
		partnerOutTotal: avgTrade(all, world, contracts.FlowExport, country1, numYears),
	}

	return Metrics{
		Import: computeSide(imports),
		Export: computeSide(exports),
	}
}

func computeSide(a sideAggregates) SideMetrics {
	bilateral := rca(a.bilateral, a.bilateralTotal, a.partnerIn, a.partnerInTotal)
	ukGlobal := rca(a.ukWorld, a.ukWorldTotal, a.world, a.worldTotal)
	partnerGlobal := rca(a.partnerOut, a.partnerOutTotal, a.world, a.worldTotal)

	return SideMetrics{
		BilateralRCA:                bilateral,
		UKGlobalRCA:                 ukGlobal,
		RCADifference:               ukGlobal.Sub(bilateral),
		PartnerGlobalRCA:            partnerGlobal,
		GlobalRCADifference:         ukGlobal.Sub(partnerGlobal),
		PartnerFromWorld:            a.partnerIn,
		WorldFromUK:                 a.ukWorld,
		PartnerFromUK:               a.bilateral,
		MarketShare:                 safeDiv(a.bilateral, a.partnerIn),
		UKShareOfImportMarket:       safeDiv(a.bilateralTotal, a.partnerInTotal),
		ProductSharePartnerImport:   safeDiv(a.partnerIn, a.partnerInTotal),
		ProductShareUKExportWorld:   safeDiv(a.ukWorld, a.ukWorldTotal),
		ProductShareUKExportPartner: safeDiv(a.bilateral, a.bilateralTotal),
	}
}

// rca computes the difference-form RCA: observed share minus expected share.
//
//	rca = affected/denomTotal - (denom * affectedTotal) / denomTotal^2
//
// A zero denominator total yields zero.
func rca(affected, affectedTotal, denom, denomTotal decimal.Decimal) decimal.Decimal {
	if denomTotal.IsZero() {
		return decimal.Zero
	}
	observed := affected.Div(denomTotal)
	expected := denom.Mul(affectedTotal).Div(denomTotal.Mul(denomTotal))
	return observed.Sub(expected)
}

// safeDiv divides with the denominator-zero guard.
func safeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
