package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
)

// TotalProductsLabel stamps the all-products aggregation rows.
const TotalProductsLabel = "Total"

// Relationship identifies one bilateral or world-level flow. An empty
// Reporter means the reporter axis is aggregated to a world total and output
// rows are stamped "World".
type Relationship struct {
	Direction string
	Partner   string
	Reporter  string
}

// YearValue is one per-year column of an aggregated row. Rows always carry a
// column for every year in the selected window, newest-first; years with no
// data are zero.
type YearValue struct {
	Year  int
	Value decimal.Decimal
}

// FlowRow is one averaged relationship aggregate (passes A and B).
type FlowRow struct {
	TradeFlow string
	Products  string
	Reporter  string
	Partner   string
	Values    []YearValue
	Average   decimal.Decimal
}

// CommodityRow is one averaged per-commodity aggregate (pass C).
type CommodityRow struct {
	TradeFlow     string
	Reporter      string
	Partner       string
	CommodityCode string
	Products      string
	Values        []YearValue
	Average       decimal.Decimal
}

// MarshalJSON emits the per-year columns inline, newest-first, followed by
// the average, so the report shape is stable for snapshot consumers.
func (r FlowRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeStringField(&buf, "trade_flow", r.TradeFlow)
	buf.WriteByte(',')
	writeStringField(&buf, "products", r.Products)
	buf.WriteByte(',')
	writeStringField(&buf, "reporter", r.Reporter)
	buf.WriteByte(',')
	writeStringField(&buf, "partner", r.Partner)
	writeYearColumns(&buf, r.Values, r.Average)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON mirrors FlowRow.MarshalJSON for the per-commodity rows.
func (r CommodityRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeStringField(&buf, "trade_flow", r.TradeFlow)
	buf.WriteByte(',')
	writeStringField(&buf, "reporter", r.Reporter)
	buf.WriteByte(',')
	writeStringField(&buf, "partner", r.Partner)
	buf.WriteByte(',')
	writeStringField(&buf, "commodity_code", r.CommodityCode)
	buf.WriteByte(',')
	writeStringField(&buf, "products", r.Products)
	writeYearColumns(&buf, r.Values, r.Average)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeStringField(buf *bytes.Buffer, key, value string) {
	keyJSON, _ := json.Marshal(key)
	valueJSON, _ := json.Marshal(value)
	buf.Write(keyJSON)
	buf.WriteByte(':')
	buf.Write(valueJSON)
}

func writeYearColumns(buf *bytes.Buffer, values []YearValue, average decimal.Decimal) {
	for _, yv := range values {
		fmt.Fprintf(buf, ",%q:%q", strconv.Itoa(yv.Year), yv.Value.String())
	}
	fmt.Fprintf(buf, ",%q:%q", "average", average.String())
}

// matchesRelationship reports whether a trade row falls inside the
// relationship's filter.
func matchesRelationship(row contracts.TradeRow, rel Relationship) bool {
	if row.TradeFlow != rel.Direction {
		return false
	}
	if row.Partner != rel.Partner {
		return false
	}
	if rel.Reporter != "" && row.Reporter != rel.Reporter {
		return false
	}
	return true
}

// reporterLabel is the reporter stamped on output rows.
func (rel Relationship) reporterLabel() string {
	if rel.Reporter == "" {
		return contracts.WorldPartner
	}
	return rel.Reporter
}

// aggregateFlows runs passes A and B: for each relationship, sum GBP values
// by year over the input rows and average across the window. Every output row
// carries a column for every window year.
func aggregateFlows(rows []contracts.TradeRow, relationships []Relationship, window []int, productsLabel string) []FlowRow {
	out := make([]FlowRow, 0, len(relationships))
	for _, rel := range relationships {
		byYear := make(map[int]decimal.Decimal)
		for _, row := range rows {
			if !matchesRelationship(row, rel) {
				continue
			}
			byYear[row.Year] = byYear[row.Year].Add(row.TradeValueGBP)
		}

		values, average := windowColumns(byYear, window)
		out = append(out, FlowRow{
			TradeFlow: rel.Direction,
			Products:  productsLabel,
			Reporter:  rel.reporterLabel(),
			Partner:   rel.Partner,
			Values:    values,
			Average:   average,
		})
	}
	return out
}

// aggregateCommodities runs pass C: per relationship, group by commodity code
// and average across the window. The products label for each code is the
// most common description seen for it, ties broken by first appearance.
func aggregateCommodities(rows []contracts.TradeRow, relationships []Relationship, window []int) []CommodityRow {
	out := []CommodityRow{}
	for _, rel := range relationships {
		byCode := make(map[string]map[int]decimal.Decimal)
		descCounts := make(map[string]map[string]int)
		descOrder := make(map[string][]string)

		for _, row := range rows {
			if !matchesRelationship(row, rel) {
				continue
			}

			if byCode[row.CommodityCode] == nil {
				byCode[row.CommodityCode] = make(map[int]decimal.Decimal)
				descCounts[row.CommodityCode] = make(map[string]int)
			}
			byCode[row.CommodityCode][row.Year] = byCode[row.CommodityCode][row.Year].Add(row.TradeValueGBP)

			if descCounts[row.CommodityCode][row.Commodity] == 0 {
				descOrder[row.CommodityCode] = append(descOrder[row.CommodityCode], row.Commodity)
			}
			descCounts[row.CommodityCode][row.Commodity]++
		}

		codes := make([]string, 0, len(byCode))
		for code := range byCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			values, average := windowColumns(byCode[code], window)
			out = append(out, CommodityRow{
				TradeFlow:     rel.Direction,
				Reporter:      rel.reporterLabel(),
				Partner:       rel.Partner,
				CommodityCode: code,
				Products:      mostCommonDescription(descCounts[code], descOrder[code]),
				Values:        values,
				Average:       average,
			})
		}
	}
	return out
}

// windowColumns enumerates the window years newest-first, filling missing
// years with zero, and returns the mean over the window length.
func windowColumns(byYear map[int]decimal.Decimal, window []int) ([]YearValue, decimal.Decimal) {
	values := make([]YearValue, 0, len(window))
	total := decimal.Zero
	for _, year := range window {
		value := byYear[year]
		values = append(values, YearValue{Year: year, Value: value})
		total = total.Add(value)
	}

	if len(window) == 0 {
		return values, decimal.Zero
	}
	return values, total.Div(decimal.NewFromInt(int64(len(window))))
}

func mostCommonDescription(counts map[string]int, order []string) string {
	best := ""
	bestCount := -1
	for _, desc := range order {
		if counts[desc] > bestCount {
			best = desc
			bestCount = counts[desc]
		}
	}
	return best
}
