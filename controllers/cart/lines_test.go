package cartControllers_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	cartControllers "github.com/Dokhanh15/Thuctap/controllers/cart"
	"github.com/Dokhanh15/Thuctap/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Payment{}))
	return db
}

func seedCartAndProduct(t *testing.T, db *gorm.DB) (models.Cart, models.Product) {
	t.Helper()
	product := models.Product{Title: "widget", Price: 100}
	require.NoError(t, db.Create(&product).Error)
	cart := models.Cart{UserID: 1}
	require.NoError(t, db.Create(&cart).Error)
	return cart, product
}

func cartLines(t *testing.T, db *gorm.DB, cartID uint) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cartID).Find(&items).Error)
	return items
}

func TestAddLineAggregatesDuplicates(t *testing.T) {
	db := openTestDB(t)
	cart, product := seedCartAndProduct(t, db)

	require.NoError(t, cartControllers.AddLine(db, cart.CartID, product.ID, 2))
	require.NoError(t, cartControllers.AddLine(db, cart.CartID, product.ID, 3))

	items := cartLines(t, db, cart.CartID)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	db := openTestDB(t)
	cart, product := seedCartAndProduct(t, db)

	assert.ErrorIs(t, cartControllers.AddLine(db, cart.CartID, product.ID, 0), cartControllers.ErrQuantity)
	assert.ErrorIs(t, cartControllers.AddLine(db, cart.CartID, product.ID, -1), cartControllers.ErrQuantity)
	assert.Empty(t, cartLines(t, db, cart.CartID))
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	db := openTestDB(t)
	cart, product := seedCartAndProduct(t, db)

	require.NoError(t, cartControllers.AddLine(db, cart.CartID, product.ID, 1))
	require.NoError(t, cartControllers.SetQuantity(db, cart.CartID, product.ID, 0))

	// The line is gone, not retained with quantity 0
	assert.Empty(t, cartLines(t, db, cart.CartID))
}

func TestSetQuantityExplicitValue(t *testing.T) {
	db := openTestDB(t)
	cart, product := seedCartAndProduct(t, db)

	require.NoError(t, cartControllers.AddLine(db, cart.CartID, product.ID, 5))
	require.NoError(t, cartControllers.SetQuantity(db, cart.CartID, product.ID, 2))

	items := cartLines(t, db, cart.CartID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveLineIdempotent(t *testing.T) {
	db := openTestDB(t)
	cart, product := seedCartAndProduct(t, db)

	require.NoError(t, cartControllers.AddLine(db, cart.CartID, product.ID, 1))

	require.NoError(t, cartControllers.RemoveLine(db, cart.CartID, product.ID))
	require.NoError(t, cartControllers.RemoveLine(db, cart.CartID, product.ID))

	assert.Empty(t, cartLines(t, db, cart.CartID))
}

func TestConcurrentAddLineConverges(t *testing.T) {
	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cart, product := seedCartAndProduct(t, db)

	const adds = 10
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- cartControllers.AddLine(db, cart.CartID, product.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items := cartLines(t, db, cart.CartID)
	require.Len(t, items, 1)
	assert.Equal(t, adds, items[0].Quantity)
}

func TestCartTotalUsesEffectivePrices(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pct := 20.0
	start := t0
	end := t0.Add(time.Hour)

	cart := models.Cart{
		Items: []models.CartItem{
			{
				Product: models.Product{
					Price:              100,
					DiscountPercentage: &pct,
					SaleStartDateTime:  &start,
					SaleEndDateTime:    &end,
				},
				Quantity: 2,
			},
			{
				Product:  models.Product{Price: 10},
				Quantity: 3,
			},
		},
	}

	// Inside the window the discounted price applies
	assert.Equal(t, 80.0*2+10*3, cartControllers.CartTotal(cart, t0.Add(30*time.Minute)))

	// After the window the same cart totals at base price
	assert.Equal(t, 100.0*2+10*3, cartControllers.CartTotal(cart, t0.Add(2*time.Hour)))
}
