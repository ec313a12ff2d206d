package assessment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/httputil"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

// areaFixture is the country set the test area documents cover.
var areaFixture = map[string]string{
	"World":              "0",
	"Azerbaijan":         "31",
	"Bangladesh":         "50",
	"Russian Federation": "643",
	"Saudi Arabia":       "682",
	"United Kingdom":     "826",
	"USA":                "842",
}

// fakeStore is an in-memory contracts.TradeStore over fixture rows. It
// filters with the same predicate semantics as the Postgres repository.
type fakeStore struct {
	rows []contracts.StoredRow
}

func (s *fakeStore) Query(_ context.Context, q contracts.TradeQuery) ([]contracts.StoredRow, error) {
	nameByCode := make(map[string]string, len(areaFixture))
	for name, code := range areaFixture {
		nameByCode[code] = name
	}

	var out []contracts.StoredRow
	for _, row := range s.rows {
		if !containsInt(q.Years, row.Year) {
			continue
		}
		if !containsString(q.CommodityCodes, row.CommodityCode) {
			continue
		}
		if !containsInt(q.FlowCodes, row.TradeFlowCode) {
			continue
		}
		if !matchesArea(q.PartnerCodes, nameByCode, row.Partner) {
			continue
		}
		if len(q.ReporterCodes) > 0 && !matchesArea(q.ReporterCodes, nameByCode, row.Reporter) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func matchesArea(codes []string, nameByCode map[string]string, name string) bool {
	for _, code := range codes {
		if nameByCode[code] == name {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// row builds one stored fixture row.
func row(year, flowCode int, reporter, partner, code, commodity string, usd int64) contracts.StoredRow {
	return contracts.StoredRow{
		Year:          year,
		TradeFlowCode: flowCode,
		Reporter:      reporter,
		Partner:       partner,
		CommodityCode: code,
		Commodity:     commodity,
		TradeValueUSD: decimal.NewFromInt(usd),
	}
}

// totalRows emits the four TOTAL-versus-World rows that make a year fully
// reported for the pair.
func totalRows(year int, country1, country2 string, usd int64) []contracts.StoredRow {
	return []contracts.StoredRow{
		row(year, contracts.FlowCodeImport, country1, "World", "TOTAL", "All Commodities", usd),
		row(year, contracts.FlowCodeExport, country1, "World", "TOTAL", "All Commodities", usd),
		row(year, contracts.FlowCodeImport, country2, "World", "TOTAL", "All Commodities", usd),
		row(year, contracts.FlowCodeExport, country2, "World", "TOTAL", "All Commodities", usd),
	}
}

func quietLogger() *logger.Logger {
	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	return logger.New(cfg)
}

// newTestClient builds a comtrade client over fixture rows and a local area
// server. Each call constructs a fresh resolver, so tests never share lookup
// state.
func newTestClient(t *testing.T, rows []contracts.StoredRow) *comtrade.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[`)
		writeAreaResults(w)
		fmt.Fprint(w, `]}`)
	}))
	t.Cleanup(server.Close)

	cfg := config.ComtradeConfig{
		PartnerAreasURL:  server.URL + "/partnerAreas.json",
		ReporterAreasURL: server.URL + "/reporterAreas.json",
	}

	log := quietLogger()
	httpClient := httputil.New(log, 0).DisableRetry()
	resolver := comtrade.NewResolver(httpClient, nil, cfg)
	return comtrade.NewClient(&fakeStore{rows: rows}, resolver, log)
}

func writeAreaResults(w http.ResponseWriter) {
	// Fixed order keeps the fixture deterministic.
	names := []string{"World", "Azerbaijan", "Bangladesh", "Russian Federation", "Saudi Arabia", "United Kingdom", "USA"}
	for i, name := range names {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, `{"id":%q,"text":%q}`, areaFixture[name], name)
	}
}
