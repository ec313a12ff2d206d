package comtrade

import "errors"

// Domain error family. Callers match with errors.Is; all calculator-level
// failures surface as one of these.
var (
	// ErrCountryNotFound means a supplied country name could not be mapped
	// to a comtrade area code.
	ErrCountryNotFound = errors.New("comtrade: country not found")

	// ErrExchangeRateNotFound means a row's year is outside the pinned
	// exchange-rate table.
	ErrExchangeRateNotFound = errors.New("comtrade: exchange rate not found")

	// ErrCountryYearlyDataNotFound means no fully-reported year could be
	// located for the country pair.
	ErrCountryYearlyDataNotFound = errors.New("comtrade: no fully reported years for country pair")
)

// IsComtradeError reports whether err belongs to the comtrade error family.
func IsComtradeError(err error) bool {
	return errors.Is(err, ErrCountryNotFound) ||
		errors.Is(err, ErrExchangeRateNotFound) ||
		errors.Is(err, ErrCountryYearlyDataNotFound)
}
