package money

import (
	"fmt"
	"math"
)

// RateTolerance is the maximum relative deviation accepted between a
// client-supplied exchange rate and the live reference rate.
const RateTolerance = 0.02

// CoverageToleranceCents is the settlement slack allowed when checking whether
// cumulative payments cover an order total (one US cent).
const CoverageToleranceCents int64 = 1

// Conversion is the settlement-currency result of converting a payment amount.
type Conversion struct {
	// AmountUSDCents is the converted amount in USD cents.
	AmountUSDCents int64
	// Rate is the exchange rate that was applied and must be persisted
	// alongside the payment (1 for USD).
	Rate float64
}

// RateMismatchError is returned when a client-supplied rate deviates from the
// reference rate beyond RateTolerance.
type RateMismatchError struct {
	Supplied  float64
	Reference float64
}

func (e *RateMismatchError) Error() string {
	return fmt.Sprintf("supplied rate %.2f deviates more than %.0f%% from reference rate %.2f",
		e.Supplied, RateTolerance*100, e.Reference)
}

// Round2 rounds a rate to two decimals, which is the precision persisted with
// every payment.
func Round2(rate float64) float64 {
	return math.Round(rate*100) / 100
}

// ConvertUSD converts a USD amount. The identity conversion, kept so payment
// recording treats both currencies uniformly.
func ConvertUSD(amountCents int64) Conversion {
	return Conversion{AmountUSDCents: amountCents, Rate: 1}
}

// ConvertVES converts a VES amount (in céntimos) to USD cents.
//
// When suppliedRate is positive it is validated against referenceRate within
// RateTolerance; a deviation beyond that fails with *RateMismatchError. The
// persisted rate is always the reference rate rounded to two decimals, never
// the raw client value, so repeated submissions cannot drift.
func ConvertVES(amountCents int64, suppliedRate, referenceRate float64) (Conversion, error) {
	if referenceRate <= 0 {
		return Conversion{}, fmt.Errorf("invalid reference rate %v", referenceRate)
	}
	if suppliedRate > 0 {
		// The epsilon keeps a rate at exactly the tolerance edge on the
		// accepted side despite float64 rounding (24.48 - 24.0 > 0.48).
		if math.Abs(suppliedRate-referenceRate) > referenceRate*RateTolerance+1e-9 {
			return Conversion{}, &RateMismatchError{Supplied: suppliedRate, Reference: referenceRate}
		}
	}

	rate := Round2(referenceRate)
	usdCents := int64(math.Round(float64(amountCents) / rate))
	return Conversion{AmountUSDCents: usdCents, Rate: rate}, nil
}

// Covers reports whether paidCents covers totalCents within the settlement
// tolerance.
func Covers(paidCents, totalCents int64) bool {
	return paidCents >= totalCents-CoverageToleranceCents
}

// CentsToDecimal converts integer cents to a decimal amount for API responses.
func CentsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}

// DecimalToCents converts a decimal amount to integer cents.
func DecimalToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
