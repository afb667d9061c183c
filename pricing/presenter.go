package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
)

// Display holds the view-model values for a product's price. Purely derived
// from (product, now); recomputing it never mutates persisted state.
type Display struct {
	DisplayPrice       float64  `json:"display_price"`
	StrikethroughPrice *float64 `json:"strikethrough_price,omitempty"`
	DiscountLabel      string   `json:"discount_label,omitempty"`
	TimeRemaining      string   `json:"time_remaining,omitempty"`
}

// DisplayFor renders the price of p as of now. Prices are rounded to two
// decimals here, at presentation time only.
func DisplayFor(p models.Product, now time.Time) Display {
	q := EffectivePrice(p, now)
	d := Display{DisplayPrice: round2(q.UnitPrice)}
	if q.IsOnSale {
		base := round2(p.Price)
		d.StrikethroughPrice = &base
		d.DiscountLabel = fmt.Sprintf("-%.0f%%", *p.DiscountPercentage)
		d.TimeRemaining = FormatRemaining(p.SaleEndDateTime.Sub(now))
		return d
	}
	// Sale fields still present but the window is over: show "ended" until
	// the next catalog read clears them.
	if p.SaleEndDateTime != nil && !now.Before(*p.SaleEndDateTime) {
		d.TimeRemaining = "ended"
	}
	return d
}

// FormatRemaining renders a countdown as days/hours/minutes/seconds,
// clamped to zero.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "ended"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, seconds)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
