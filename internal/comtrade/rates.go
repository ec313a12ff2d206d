package comtrade

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Annual average USD per GBP. Trade values arrive in USD and are converted by
// dividing by the rate for the row's year. The table is pinned; a year
// outside it is a data-bounds violation, not something to extrapolate.
var exchangeRates = map[int]decimal.Decimal{
	2000: decimal.RequireFromString("1.5162"),
	2001: decimal.RequireFromString("1.4401"),
	2002: decimal.RequireFromString("1.5034"),
	2003: decimal.RequireFromString("1.6354"),
	2004: decimal.RequireFromString("1.8326"),
	2005: decimal.RequireFromString("1.8188"),
	2006: decimal.RequireFromString("1.8434"),
	2007: decimal.RequireFromString("2.0018"),
	2008: decimal.RequireFromString("1.8528"),
	2009: decimal.RequireFromString("1.5659"),
	2010: decimal.RequireFromString("1.5459"),
	2011: decimal.RequireFromString("1.6038"),
	2012: decimal.RequireFromString("1.5852"),
	2013: decimal.RequireFromString("1.5646"),
	2014: decimal.RequireFromString("1.6482"),
	2015: decimal.RequireFromString("1.5285"),
	2016: decimal.RequireFromString("1.3555"),
	2017: decimal.RequireFromString("1.2890"),
	2018: decimal.RequireFromString("1.3349"),
	2019: decimal.RequireFromString("1.2772"),
}

// usdToGBP converts a USD trade value to GBP using the pinned annual rate.
func usdToGBP(valueUSD decimal.Decimal, year int) (decimal.Decimal, error) {
	rate, ok := exchangeRates[year]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: year %d", ErrExchangeRateNotFound, year)
	}
	return valueUSD.Div(rate), nil
}
