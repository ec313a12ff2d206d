package assessment

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
)

func gbpRow(year int, flow, reporter, partner, code, commodity, gbp string) contracts.TradeRow {
	return contracts.TradeRow{
		Year:          year,
		TradeFlow:     flow,
		Reporter:      reporter,
		Partner:       partner,
		CommodityCode: code,
		Commodity:     commodity,
		TradeValueGBP: decimal.RequireFromString(gbp),
	}
}

func TestAggregateFlows(t *testing.T) {
	window := []int{2019, 2018, 2017}
	rows := []contracts.TradeRow{
		gbpRow(2019, "Import", "Azerbaijan", "United Kingdom", "7304", "Pipes", "300"),
		gbpRow(2019, "Import", "Azerbaijan", "United Kingdom", "7306", "Tubes", "150"),
		gbpRow(2018, "Import", "Azerbaijan", "United Kingdom", "7304", "Pipes", "60"),
		// Different partner, must not leak in.
		gbpRow(2019, "Import", "Azerbaijan", "World", "7304", "Pipes", "9999"),
	}

	rels := []Relationship{
		{Direction: "Import", Partner: "United Kingdom", Reporter: "Azerbaijan"},
	}

	out := aggregateFlows(rows, rels, window, "Steel pipes")
	require.Len(t, out, 1)

	row := out[0]
	assert.Equal(t, "Import", row.TradeFlow)
	assert.Equal(t, "Steel pipes", row.Products)
	assert.Equal(t, "Azerbaijan", row.Reporter)
	assert.Equal(t, "United Kingdom", row.Partner)

	require.Len(t, row.Values, 3)
	assert.Equal(t, 2019, row.Values[0].Year)
	assert.True(t, row.Values[0].Value.Equal(decimal.RequireFromString("450")))
	assert.True(t, row.Values[1].Value.Equal(decimal.RequireFromString("60")))
	assert.True(t, row.Values[2].Value.IsZero(), "missing year must be filled with zero")

	assert.True(t, row.Average.Equal(decimal.RequireFromString("170")))
}

func TestAggregateFlowsWorldReporterLabel(t *testing.T) {
	window := []int{2019}
	rows := []contracts.TradeRow{
		gbpRow(2019, "Export", "United Kingdom", "World", "7304", "Pipes", "10"),
		gbpRow(2019, "Export", "Azerbaijan", "World", "7304", "Pipes", "20"),
	}

	rels := []Relationship{{Direction: "Export", Partner: "World"}}

	out := aggregateFlows(rows, rels, window, "Pipes")
	require.Len(t, out, 1)
	assert.Equal(t, "World", out[0].Reporter, "omitted reporter is stamped World")
	assert.True(t, out[0].Values[0].Value.Equal(decimal.RequireFromString("30")),
		"world total sums across reporters")
}

func TestAggregateFlowsEmptyInput(t *testing.T) {
	window := []int{2019, 2018}
	rels := []Relationship{{Direction: "Import", Partner: "World"}}

	out := aggregateFlows(nil, rels, window, "Nothing")
	require.Len(t, out, 1)
	assert.True(t, out[0].Average.IsZero())
	require.Len(t, out[0].Values, 2)
	assert.True(t, out[0].Values[0].Value.IsZero())
	assert.True(t, out[0].Values[1].Value.IsZero())
}

func TestAggregateCommodities(t *testing.T) {
	window := []int{2019, 2018}
	rows := []contracts.TradeRow{
		gbpRow(2019, "Import", "Bangladesh", "United Kingdom", "9301", "Military weapons", "100"),
		gbpRow(2018, "Import", "Bangladesh", "United Kingdom", "9301", "Military weapons", "50"),
		gbpRow(2019, "Import", "Bangladesh", "United Kingdom", "930591", "Parts of military weapons", "30"),
	}

	rels := []Relationship{
		{Direction: "Import", Partner: "United Kingdom", Reporter: "Bangladesh"},
	}

	out := aggregateCommodities(rows, rels, window)
	require.Len(t, out, 2)

	// Codes are sorted ascending within a relationship.
	assert.Equal(t, "9301", out[0].CommodityCode)
	assert.Equal(t, "Military weapons", out[0].Products)
	assert.True(t, out[0].Average.Equal(decimal.RequireFromString("75")))

	assert.Equal(t, "930591", out[1].CommodityCode)
	assert.True(t, out[1].Average.Equal(decimal.RequireFromString("15")))
}

func TestAggregateCommoditiesEmptyInputIsNotNil(t *testing.T) {
	window := []int{2019, 2018}
	rels := []Relationship{{Direction: "Import", Partner: "World"}}

	out := aggregateCommodities(nil, rels, window)
	require.NotNil(t, out)
	assert.Len(t, out, 0)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMostCommonDescriptionTieBreaksFirstSeen(t *testing.T) {
	window := []int{2019, 2018}
	rows := []contracts.TradeRow{
		gbpRow(2019, "Import", "Bangladesh", "World", "9301", "Military weapons", "1"),
		gbpRow(2018, "Import", "Bangladesh", "World", "9301", "Weapons, military", "1"),
	}

	rels := []Relationship{{Direction: "Import", Partner: "World"}}

	out := aggregateCommodities(rows, rels, window)
	require.Len(t, out, 1)
	assert.Equal(t, "Military weapons", out[0].Products)
}

func TestFlowRowJSONShape(t *testing.T) {
	row := FlowRow{
		TradeFlow: "Import",
		Products:  "Total",
		Reporter:  "World",
		Partner:   "United Kingdom",
		Values: []YearValue{
			{Year: 2019, Value: decimal.RequireFromString("1.5")},
			{Year: 2018, Value: decimal.Zero},
		},
		Average: decimal.RequireFromString("0.75"),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	want := `{"trade_flow":"Import","products":"Total","reporter":"World","partner":"United Kingdom","2019":"1.5","2018":"0","average":"0.75"}`
	assert.Equal(t, want, string(data))
}

func TestCommodityRowJSONShape(t *testing.T) {
	row := CommodityRow{
		TradeFlow:     "Export",
		Reporter:      "United Kingdom",
		Partner:       "Bangladesh",
		CommodityCode: "9301",
		Products:      "Military weapons",
		Values:        []YearValue{{Year: 2019, Value: decimal.NewFromInt(7)}},
		Average:       decimal.NewFromInt(7),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	want := `{"trade_flow":"Export","reporter":"United Kingdom","partner":"Bangladesh","commodity_code":"9301","products":"Military weapons","2019":"7","average":"7"}`
	assert.Equal(t, want, string(data))
}
