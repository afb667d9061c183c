package pricing

import (
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"gorm.io/gorm"
)

// Quote is the outcome of evaluating a product's sale window at an instant.
type Quote struct {
	IsOnSale  bool
	UnitPrice float64
}

// EffectivePrice evaluates the sale window of p at now.
//
// A discount is active iff a percentage is set, a sale end exists and now is
// before it, and (when a start is set) now is at or past the start. A missing
// start means the discount runs from "always" until the end instant. The
// discounted price is recomputed from the base price on every call and never
// persisted, so repeated evaluation cannot accumulate rounding error.
func EffectivePrice(p models.Product, now time.Time) Quote {
	if p.DiscountPercentage == nil || p.SaleEndDateTime == nil {
		return Quote{UnitPrice: p.Price}
	}
	if !now.Before(*p.SaleEndDateTime) {
		return Quote{UnitPrice: p.Price}
	}
	if p.SaleStartDateTime != nil && now.Before(*p.SaleStartDateTime) {
		return Quote{UnitPrice: p.Price}
	}
	return Quote{
		IsOnSale:  true,
		UnitPrice: p.Price * (1 - *p.DiscountPercentage/100),
	}
}

// Expired reports whether p's sale window ended strictly before now.
func Expired(p models.Product, now time.Time) bool {
	return p.SaleEndDateTime != nil && p.SaleEndDateTime.Before(now)
}

// ClearExpired lazily clears p's sale fields when its window has closed.
// Called from catalog reads so subsequent reads skip the check; products
// that are never re-read are handled by ExpireSales.
func ClearExpired(db *gorm.DB, p *models.Product, now time.Time) error {
	if !Expired(*p, now) {
		return nil
	}
	err := db.Model(&models.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"discount_percentage":  nil,
			"sale_start_date_time": nil,
			"sale_end_date_time":   nil,
		}).Error
	if err != nil {
		return err
	}
	p.DiscountPercentage = nil
	p.SaleStartDateTime = nil
	p.SaleEndDateTime = nil
	return nil
}

// ExpireSales clears the sale fields of every product whose window has
// closed. Returns the number of products swept.
func ExpireSales(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&models.Product{}).
		Where("sale_end_date_time IS NOT NULL AND sale_end_date_time < ?", now).
		Updates(map[string]interface{}{
			"discount_percentage":  nil,
			"sale_start_date_time": nil,
			"sale_end_date_time":   nil,
		})
	return res.RowsAffected, res.Error
}
