package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user"`                       // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"products"` // Cascade delete items if cart is deleted
	Total     float64    `gorm:"-" json:"total"`                                // Recomputed on every read, never stored
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"-"` // At most one line per (cart, product)
	Product   Product   `json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"-"`
}
