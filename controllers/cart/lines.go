package cartControllers

import (
	"errors"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrQuantity = errors.New("quantity must be at least 1")

// AddLine adds qty of a product to the cart. If a line for the product
// already exists its quantity is incremented, otherwise a new line is
// created. The increment happens inside the upsert so two concurrent adds
// for the same (cart, product) never lose an update or create a duplicate
// line.
func AddLine(db *gorm.DB, cartID uint, productID uint, qty int) error {
	if qty <= 0 {
		return ErrQuantity
	}
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// SetQuantity sets a line's quantity to an explicit value, creating the
// line when absent. A value of zero or below removes the line entirely.
func SetQuantity(db *gorm.DB, cartID uint, productID uint, qty int) error {
	if qty <= 0 {
		return RemoveLine(db, cartID, productID)
	}
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "added_at"}),
	}).Create(&item).Error
}

// RemoveLine deletes the line for the given product. Removing an absent
// line is a no-op, so the call is idempotent.
func RemoveLine(db *gorm.DB, cartID uint, productID uint) error {
	return db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// CartTotal sums effective line prices as of now. Sale windows are
// time-dependent, so the total is recomputed on every read and never cached
// on the cart row.
func CartTotal(cart models.Cart, now time.Time) float64 {
	var total float64
	for _, line := range cart.Items {
		total += pricing.EffectivePrice(line.Product, now).UnitPrice * float64(line.Quantity)
	}
	return total
}

// canonicalCart returns the user's cart with lines, products and a live
// total, creating the cart lazily on first touch.
func canonicalCart(db *gorm.DB, userID uint, now time.Time) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Items.Product").First(&cart, cart.CartID).Error; err != nil {
		return nil, err
	}
	cart.Total = CartTotal(cart, now)
	return &cart, nil
}

// ClearLines empties the cart without deleting the cart row itself.
func ClearLines(db *gorm.DB, cartID uint) error {
	return db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
