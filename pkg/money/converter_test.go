package money

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertUSD(t *testing.T) {
	conv := ConvertUSD(1200)
	assert.Equal(t, int64(1200), conv.AmountUSDCents)
	assert.Equal(t, float64(1), conv.Rate)
}

func TestConvertVES_UsesReferenceRate(t *testing.T) {
	// 192 VES at rate 24.00 -> $8.00
	conv, err := ConvertVES(19200, 0, 24.0)
	require.NoError(t, err)
	assert.Equal(t, int64(800), conv.AmountUSDCents)
	assert.Equal(t, 24.0, conv.Rate)
}

func TestConvertVES_PersistsRoundedReferenceRate(t *testing.T) {
	// Client sends a slightly stale but tolerated rate; the stored rate must
	// be the rounded reference rate, not the client value.
	conv, err := ConvertVES(19200, 24.3, 24.0055)
	require.NoError(t, err)
	assert.Equal(t, 24.01, conv.Rate)
	assert.Equal(t, int64(800), conv.AmountUSDCents) // round(19200 / 24.01)
}

func TestConvertVES_WithinTolerance(t *testing.T) {
	// 2% of 24.00 is 0.48, so 24.48 is the edge of acceptance.
	_, err := ConvertVES(10000, 24.48, 24.0)
	assert.NoError(t, err)

	_, err = ConvertVES(10000, 23.52, 24.0)
	assert.NoError(t, err)
}

func TestConvertVES_JustBeyondToleranceRejected(t *testing.T) {
	_, err := ConvertVES(10000, 24.49, 24.0)
	assert.Error(t, err)

	_, err = ConvertVES(10000, 23.51, 24.0)
	assert.Error(t, err)
}

func TestConvertVES_RateMismatch(t *testing.T) {
	_, err := ConvertVES(19200, 30.0, 24.0)
	require.Error(t, err)

	var mismatch *RateMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 30.0, mismatch.Supplied)
	assert.Equal(t, 24.0, mismatch.Reference)
}

func TestConvertVES_InvalidReferenceRate(t *testing.T) {
	_, err := ConvertVES(1000, 0, 0)
	assert.Error(t, err)
}

func TestCovers(t *testing.T) {
	assert.True(t, Covers(2000, 2000))
	assert.True(t, Covers(1999, 2000)) // one cent short is tolerated
	assert.False(t, Covers(1998, 2000))
	assert.True(t, Covers(2500, 2000))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 24.01, Round2(24.0055))
	assert.Equal(t, 24.0, Round2(24.0))
	assert.Equal(t, 36.55, Round2(36.554))
}

func TestDecimalConversions(t *testing.T) {
	assert.Equal(t, int64(1250), DecimalToCents(12.50))
	assert.Equal(t, 12.5, CentsToDecimal(1250))
	assert.Equal(t, int64(1), DecimalToCents(0.0099))
}
