package assessment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Qualitative labels for RCA metric pairs.
const (
	labelNA            = "NA"
	labelSpecialised   = "Specialised"
	labelUnspecialised = "Unspecialised"
	labelInconclusive  = "Inconclusive"
)

// shortCountryName rewrites display names for use inside sentences.
func shortCountryName(name string) string {
	if name == "United Kingdom" {
		return "the UK"
	}
	return name
}

// rcaLabel converts an (import, export) RCA pair into a qualitative label.
// Null on both sides means no data at all; a zero value is a value.
func rcaLabel(imp, exp decimal.NullDecimal) string {
	switch {
	case !imp.Valid && !exp.Valid:
		return labelNA
	case imp.Valid && exp.Valid && imp.Decimal.IsPositive() && exp.Decimal.IsPositive():
		return labelSpecialised
	case imp.Valid && exp.Valid && imp.Decimal.IsNegative() && exp.Decimal.IsNegative():
		return labelUnspecialised
	default:
		return labelInconclusive
	}
}

// rcaDiffLabel describes the UK-minus-bilateral RCA difference.
func rcaDiffLabel(imp, exp decimal.NullDecimal, country1, country2 string) string {
	c1 := shortCountryName(country1)
	c2 := shortCountryName(country2)

	switch {
	case !imp.Valid && !exp.Valid:
		return labelNA
	case imp.Valid && exp.Valid && imp.Decimal.IsPositive() && exp.Decimal.IsPositive():
		return fmt.Sprintf("%s more specialised globally than in %s", c2, c1)
	case imp.Valid && exp.Valid && imp.Decimal.IsNegative() && exp.Decimal.IsNegative():
		return fmt.Sprintf("%s more specialised in %s than globally", c2, c1)
	default:
		return labelInconclusive
	}
}

// rcaDiffGlobalLabel describes the UK-minus-partner global RCA difference.
func rcaDiffGlobalLabel(imp, exp decimal.NullDecimal, country1, country2 string) string {
	c1 := shortCountryName(country1)
	c2 := shortCountryName(country2)

	switch {
	case !imp.Valid && !exp.Valid:
		return labelNA
	case imp.Valid && exp.Valid && imp.Decimal.IsPositive() && exp.Decimal.IsPositive():
		return fmt.Sprintf("%s more specialised globally than %s", c2, c1)
	case imp.Valid && exp.Valid && imp.Decimal.IsNegative() && exp.Decimal.IsNegative():
		return fmt.Sprintf("%s more specialised globally than %s", c1, c2)
	default:
		return labelInconclusive
	}
}

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)

	hundred       = decimal.NewFromInt(100)
	hundredK      = decimal.NewFromInt(100_000)
	hundredM      = decimal.NewFromInt(100_000_000)
	oneHundredPct = decimal.NewFromInt(100)
)

// formatValue renders a GBP amount with a magnitude suffix:
//
//	< 1,000          £<v> rounded to the nearest pound
//	< 1,000,000      £<v>k rounded to the nearest hundred
//	< 1,000,000,000  £<v>m rounded to the nearest hundred thousand
//	otherwise        £<v>bn rounded to the nearest hundred million
//
// The division happens after rounding so no precision is lost beforehand.
func formatValue(v decimal.Decimal) string {
	switch {
	case v.LessThan(thousand):
		return "£" + v.Round(0).String()
	case v.LessThan(million):
		rounded := v.Div(hundred).Round(0).Mul(hundred)
		return "£" + rounded.Div(thousand).String() + "k"
	case v.LessThan(billion):
		rounded := v.Div(hundredK).Round(0).Mul(hundredK)
		return "£" + rounded.Div(million).String() + "m"
	default:
		rounded := v.Div(hundredM).Round(0).Mul(hundredM)
		return "£" + rounded.Div(billion).String() + "bn"
	}
}

// valueRange renders "<min> - <max>". The range is order-insensitive.
func valueRange(a, b decimal.Decimal) string {
	lo, hi := a, b
	if lo.GreaterThan(hi) {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%s - %s", formatValue(lo), formatValue(hi))
}

// percentRange renders two ratios as a percentage range with dp decimal
// places. Ratios that round to the same percentage collapse to a single
// value.
func percentRange(a, b decimal.Decimal, dp int32) string {
	lo, hi := a, b
	if lo.GreaterThan(hi) {
		lo, hi = hi, lo
	}

	loPct := lo.Mul(oneHundredPct).StringFixed(dp)
	hiPct := hi.Mul(oneHundredPct).StringFixed(dp)
	if loPct == hiPct {
		return loPct + "%"
	}
	return fmt.Sprintf("%s%% - %s%%", loPct, hiPct)
}
