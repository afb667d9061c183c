package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"` // base price, currency-agnostic unit
	Image       string    `json:"image"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `json:"category,omitempty"`
	RatingRate  float64   `json:"rating_rate"`
	RatingCount int       `json:"rating_count"`

	// Sale fields live and die together: all three are cleared once the
	// window closes, either lazily on read or by the periodic sweep.
	DiscountPercentage *float64   `json:"discountPercentage,omitempty"`
	SaleStartDateTime  *time.Time `json:"saleStartDateTime,omitempty"`
	SaleEndDateTime    *time.Time `json:"saleEndDateTime,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
