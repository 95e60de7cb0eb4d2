package quote

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"crossborder-remit/internal/core/domain"
)

func rate(v string) *domain.ExchangeRate {
	return &domain.ExchangeRate{CurrencyPair: "INR_USD", Rate: decimal.RequireFromString(v)}
}

func TestCompute_ReferenceScenario(t *testing.T) {
	b := Compute(decimal.NewFromInt(1000), rate("83.0")).Rounded()

	assert.Equal(t, "12.048193", b.AmountTarget.StringFixed(6))
	assert.Equal(t, "5.00", b.PlatformFee.StringFixed(2))
	assert.Equal(t, "1005.00", b.TotalCost.StringFixed(2))
	assert.Equal(t, "0.05", b.NetworkFee.StringFixed(2))
}

func TestCompute_ZeroAmount(t *testing.T) {
	d := Compute(decimal.Zero, rate("83")).Rounded().Display()

	assert.Equal(t, Display{
		AmountSource: "0.00",
		AmountTarget: "0.000000",
		PlatformFee:  "0.00",
		NetworkFee:   "0.05",
		TotalCost:    "0.00",
	}, d)
}

func TestCompute_NilRate(t *testing.T) {
	b := Compute(decimal.NewFromInt(250), nil)

	assert.True(t, b.AmountTarget.IsZero())
	assert.Equal(t, "251.25", b.Rounded().TotalCost.StringFixed(2))
}

func TestCompute_TotalExcludesNetworkFee(t *testing.T) {
	amounts := []string{"1", "99.99", "1234.567", "50000"}
	rates := []string{"83", "82.75", "0.5"}

	for _, a := range amounts {
		for _, r := range rates {
			t.Run(a+"@"+r, func(t *testing.T) {
				amt := decimal.RequireFromString(a)
				rt := decimal.RequireFromString(r)
				b := Compute(amt, rate(r)).Rounded()

				wantTotal := amt.Add(amt.Mul(decimal.RequireFromString("0.005"))).Round(2)
				wantTarget := amt.DivRound(rt, 18).Round(6)
				assert.True(t, wantTotal.Equal(b.TotalCost), "total %s != %s", b.TotalCost, wantTotal)
				assert.True(t, wantTarget.Equal(b.AmountTarget), "target %s != %s", b.AmountTarget, wantTarget)
			})
		}
	}
}

func TestCompute_UnroundedUntilRounded(t *testing.T) {
	b := Compute(decimal.RequireFromString("0.01"), rate("3"))

	assert.Equal(t, "0.00005", b.PlatformFee.String())
	assert.Equal(t, "0.00", b.Rounded().PlatformFee.StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"-5", "0"},
		{"1000", "1000"},
		{" 12.5 ", "12.5"},
		{"1e5", "0"},
		{"1E+999999", "0"},
		{"1e2000000", "0"},
		{"+5", "0"},
		{".5", "0"},
		{"5.", "0"},
		{"0x10", "0"},
		{"1,000", "0"},
		{"123456789012345", "123456789012345"},
		{"1234567890123456", "0"},
		{"1." + strings.Repeat("9", 18), "1." + strings.Repeat("9", 18)},
		{"1." + strings.Repeat("9", 19), "0"},
		{strings.Repeat("9", 4096), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.raw).String())
		})
	}
}

func TestRounded_CentAmountTotalIsAmountPlusFee(t *testing.T) {
	amounts := []string{"1.005", "0.995", "2.675", "10.125", "1000.0049", "333.335", "1", "99.99", "1.01"}

	for _, a := range amounts {
		t.Run(a, func(t *testing.T) {
			b := Compute(Cents(ParseAmount(a)), rate("83")).Rounded()

			assert.True(t, b.TotalCost.Equal(b.AmountSource.Add(b.PlatformFee)),
				"total %s != %s + %s", b.TotalCost, b.AmountSource, b.PlatformFee)
		})
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, "1.01", Cents(decimal.RequireFromString("1.005")).StringFixed(2))
	assert.Equal(t, "2.5", Cents(decimal.RequireFromString("2.5")).String())
	assert.True(t, Cents(decimal.Zero).IsZero())
}
