package pricing_test

import (
	"testing"
	"time"

	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayForActiveSale(t *testing.T) {
	p := saleProduct(100, 20, ts(t0), ts(t0.Add(time.Hour)))

	d := pricing.DisplayFor(p, t0.Add(30*time.Minute))

	assert.Equal(t, 80.0, d.DisplayPrice)
	require.NotNil(t, d.StrikethroughPrice)
	assert.Equal(t, 100.0, *d.StrikethroughPrice)
	assert.Equal(t, "-20%", d.DiscountLabel)
	assert.Equal(t, "0d 00h 30m 00s", d.TimeRemaining)
}

func TestDisplayForRoundsAtPresentationOnly(t *testing.T) {
	// 19.99 * 0.85 = 16.9915, shown as 16.99
	p := saleProduct(19.99, 15, ts(t0), ts(t0.Add(time.Hour)))

	d := pricing.DisplayFor(p, t0.Add(time.Minute))

	assert.Equal(t, 16.99, d.DisplayPrice)
}

func TestDisplayForEndedSale(t *testing.T) {
	// Sale fields still persisted but the window is over
	p := saleProduct(100, 20, ts(t0.Add(-2*time.Hour)), ts(t0.Add(-time.Hour)))

	d := pricing.DisplayFor(p, t0)

	assert.Equal(t, 100.0, d.DisplayPrice)
	assert.Nil(t, d.StrikethroughPrice)
	assert.Empty(t, d.DiscountLabel)
	assert.Equal(t, "ended", d.TimeRemaining)
}

func TestDisplayForNoSale(t *testing.T) {
	p := saleProduct(100, 0, nil, nil)
	p.DiscountPercentage = nil

	d := pricing.DisplayFor(p, t0)

	assert.Equal(t, 100.0, d.DisplayPrice)
	assert.Nil(t, d.StrikethroughPrice)
	assert.Empty(t, d.TimeRemaining)
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{25*time.Hour + time.Minute + time.Second, "1d 01h 01m 01s"},
		{90 * time.Second, "0d 00h 01m 30s"},
		{time.Second, "0d 00h 00m 01s"},
		{0, "ended"},
		{-time.Minute, "ended"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pricing.FormatRemaining(tc.d))
	}
}
