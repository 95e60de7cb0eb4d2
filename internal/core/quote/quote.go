// Package quote converts a source amount and a rate snapshot into the
// fee breakdown shown before a transfer is submitted.
package quote

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"crossborder-remit/internal/core/domain"
)

var (
	// PlatformFeeRate is charged on the source amount (0.5%).
	PlatformFeeRate = decimal.RequireFromString("0.005")
	// NetworkFee is the estimated settlement cost. It is displayed but not
	// added into the total.
	NetworkFee = decimal.RequireFromString("0.05")
)

const (
	sourcePlaces = 2
	targetPlaces = 6
)

// plainAmount bounds the input size. Exponent notation is rejected: it
// would let a few bytes expand into an arbitrarily long fixed-point string.
var plainAmount = regexp.MustCompile(`^\d{1,15}(\.\d{1,18})?$`)

// Breakdown is the result of a quote. Values are unrounded until Rounded is called.
type Breakdown struct {
	AmountSource decimal.Decimal
	AmountTarget decimal.Decimal
	PlatformFee  decimal.Decimal
	NetworkFee   decimal.Decimal
	TotalCost    decimal.Decimal
}

// Display is the string form of a rounded breakdown.
type Display struct {
	AmountSource string `json:"amount_source"`
	AmountTarget string `json:"amount_target"`
	PlatformFee  string `json:"platform_fee"`
	NetworkFee   string `json:"network_fee"`
	TotalCost    string `json:"total_cost"`
}

// ParseAmount reads user input. Only plain decimals of up to 15 integer
// and 18 fractional digits are accepted; anything else yields zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if !plainAmount.MatchString(raw) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Compute never fails. A nil rate gives a zero target amount.
func Compute(amount decimal.Decimal, rate *domain.ExchangeRate) Breakdown {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	target := decimal.Zero
	if rate != nil && rate.Rate.IsPositive() {
		target = amount.DivRound(rate.Rate, 18)
	}
	fee := amount.Mul(PlatformFeeRate)
	return Breakdown{
		AmountSource: amount,
		AmountTarget: target,
		PlatformFee:  fee,
		NetworkFee:   NetworkFee,
		TotalCost:    amount.Add(fee),
	}
}

// Rounded returns the presentation values: 2 places for the source
// currency and fees, 6 places for the target amount.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		AmountSource: b.AmountSource.Round(sourcePlaces),
		AmountTarget: b.AmountTarget.Round(targetPlaces),
		PlatformFee:  b.PlatformFee.Round(sourcePlaces),
		NetworkFee:   b.NetworkFee.Round(sourcePlaces),
		TotalCost:    b.TotalCost.Round(sourcePlaces),
	}
}

// Cents rounds a source amount to the precision the ledger stores. For a
// whole-cent amount the rounded total equals the rounded amount plus the
// rounded fee.
func Cents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(sourcePlaces)
}

func (b Breakdown) Display() Display {
	return Display{
		AmountSource: b.AmountSource.StringFixed(sourcePlaces),
		AmountTarget: b.AmountTarget.StringFixed(targetPlaces),
		PlatformFee:  b.PlatformFee.StringFixed(sourcePlaces),
		NetworkFee:   b.NetworkFee.StringFixed(sourcePlaces),
		TotalCost:    b.TotalCost.StringFixed(sourcePlaces),
	}
}
