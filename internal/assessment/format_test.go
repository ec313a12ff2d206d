package assessment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func null() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func val(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestRCALabel(t *testing.T) {
	tests := []struct {
		name string
		imp  decimal.NullDecimal
		exp  decimal.NullDecimal
		want string
	}{
		{"both null", null(), null(), "NA"},
		{"both positive", val("0.2"), val("0.5"), "Specialised"},
		{"both negative", val("-0.2"), val("-0.5"), "Unspecialised"},
		{"mixed signs", val("0.2"), val("-0.5"), "Inconclusive"},
		{"zero is a value", val("0"), val("0.5"), "Inconclusive"},
		{"one null", null(), val("0.5"), "Inconclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rcaLabel(tt.imp, tt.exp))
		})
	}
}

func TestRCADiffLabel(t *testing.T) {
	c1 := "Bangladesh"
	c2 := "United Kingdom"

	assert.Equal(t, "NA", rcaDiffLabel(null(), null(), c1, c2))
	assert.Equal(t,
		"the UK more specialised globally than in Bangladesh",
		rcaDiffLabel(val("0.1"), val("0.2"), c1, c2))
	assert.Equal(t,
		"the UK more specialised in Bangladesh than globally",
		rcaDiffLabel(val("-0.1"), val("-0.2"), c1, c2))
	assert.Equal(t, "Inconclusive", rcaDiffLabel(val("0.1"), val("-0.2"), c1, c2))
}

func TestRCADiffGlobalLabel(t *testing.T) {
	c1 := "Saudi Arabia"
	c2 := "United Kingdom"

	assert.Equal(t,
		"the UK more specialised globally than Saudi Arabia",
		rcaDiffGlobalLabel(val("0.1"), val("0.2"), c1, c2))
	assert.Equal(t,
		"Saudi Arabia more specialised globally than the UK",
		rcaDiffGlobalLabel(val("-0.1"), val("-0.2"), c1, c2))
	assert.Equal(t, "Inconclusive", rcaDiffGlobalLabel(val("0"), val("0.2"), c1, c2))
	assert.Equal(t, "NA", rcaDiffGlobalLabel(null(), null(), c1, c2))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "£0"},
		{"999.4", "£999"},
		{"1000", "£1k"},
		{"12345", "£12.3k"},
		{"999949", "£999.9k"},
		{"1000000", "£1m"},
		{"12345678", "£12.3m"},
		{"950000000", "£950m"},
		{"1000000000", "£1bn"},
		{"1234567890", "£1.2bn"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestValueRangeOrderInsensitive(t *testing.T) {
	a := decimal.RequireFromString("12345678")
	b := decimal.RequireFromString("950000")

	assert.Equal(t, valueRange(a, b), valueRange(b, a))
	assert.Equal(t, "£950k - £12.3m", valueRange(a, b))
}

func TestValueRangeZero(t *testing.T) {
	assert.Equal(t, "£0 - £0", valueRange(decimal.Zero, decimal.Zero))
}

func TestPercentRange(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		dp   int32
		want string
	}{
		{"distinct", "0.031", "0.124", 1, "3.1% - 12.4%"},
		{"equal collapses", "0.25", "0.25", 1, "25.0%"},
		{"rounds to equal collapses", "0.2501", "0.2502", 1, "25.0%"},
		{"order insensitive", "0.124", "0.031", 1, "3.1% - 12.4%"},
		{"zero", "0", "0", 1, "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentRange(decimal.RequireFromString(tt.a), decimal.RequireFromString(tt.b), tt.dp)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortCountryName(t *testing.T) {
	assert.Equal(t, "the UK", shortCountryName("United Kingdom"))
	assert.Equal(t, "Azerbaijan", shortCountryName("Azerbaijan"))
}
