package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/internal/contracts"
)

// earliestProbeYear is the oldest year the selector will probe. Comtrade
// coverage before this is too sparse to trust.
const earliestProbeYear = 2001

// maxWindowYears caps the year window used for averaging.
const maxWindowYears = 3

// YearSelector locates the most recent fully-reported years for a country
// pair by probing the trade source with TOTAL queries.
type YearSelector struct {
	client *comtrade.Client
	now    func() time.Time
}

// NewYearSelector creates a selector over the given comtrade client.
func NewYearSelector(client *comtrade.Client) *YearSelector {
	return &YearSelector{
		client: client,
		now:    time.Now,
	}
}

// Select returns up to three consecutive fully-reported years ending at or
// before the requested year, newest-first. year 0 means "not supplied" and
// starts the probe at the calendar year before the current one.
//
// A year is fully reported iff the TOTAL probe for it returns exactly four
// rows, all carrying that year: imports and exports versus World for each of
// the two reporters. A year with duplicate rows (for example a revision row)
// is rejected.
func (s *YearSelector) Select(ctx context.Context, country1, country2 string, year int) ([]int, error) {
	start := year
	if start == 0 {
		start = s.now().Year() - 1
	}

	var window []int
	for y := start; y >= earliestProbeYear && len(window) < maxWindowYears; y-- {
		ok, err := s.fullyReported(ctx, country1, country2, y)
		if err != nil {
			return nil, err
		}
		if ok {
			window = append(window, y)
		}
	}

	if len(window) == 0 {
		return nil, fmt.Errorf("%w: %s and %s at or before %d",
			comtrade.ErrCountryYearlyDataNotFound, country1, country2, start)
	}
	return window, nil
}

func (s *YearSelector) fullyReported(ctx context.Context, country1, country2 string, year int) (bool, error) {
	rows, err := s.client.Get(ctx,
		[]int{year},
		[]string{contracts.WorldPartner},
		nil, // TOTAL
		[]string{country1, country2},
	)
	if err != nil {
		return false, err
	}

	if len(rows) != 4 {
		return false, nil
	}
	for _, row := range rows {
		if row.Year != year {
			return false, nil
		}
	}
	return true, nil
}
