package pricing_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func saleProduct(price, pct float64, start, end *time.Time) models.Product {
	return models.Product{
		Title:              "test product",
		Price:              price,
		DiscountPercentage: &pct,
		SaleStartDateTime:  start,
		SaleEndDateTime:    end,
	}
}

func ts(t time.Time) *time.Time { return &t }

func TestEffectivePriceWithinWindow(t *testing.T) {
	p := saleProduct(100, 20, ts(t0), ts(t0.Add(time.Hour)))

	q := pricing.EffectivePrice(p, t0.Add(30*time.Minute))

	assert.True(t, q.IsOnSale)
	assert.Equal(t, 80.0, q.UnitPrice)
}

func TestEffectivePriceAfterEnd(t *testing.T) {
	p := saleProduct(100, 20, ts(t0), ts(t0.Add(time.Hour)))

	q := pricing.EffectivePrice(p, t0.Add(2*time.Hour))

	assert.False(t, q.IsOnSale)
	assert.Equal(t, 100.0, q.UnitPrice)
}

func TestEffectivePriceAtEndInstant(t *testing.T) {
	p := saleProduct(100, 20, ts(t0), ts(t0.Add(time.Hour)))

	// The window is half-open: the end instant itself is already expired
	q := pricing.EffectivePrice(p, t0.Add(time.Hour))

	assert.False(t, q.IsOnSale)
	assert.Equal(t, 100.0, q.UnitPrice)
}

func TestEffectivePriceBeforeStart(t *testing.T) {
	p := saleProduct(100, 20, ts(t0.Add(time.Hour)), ts(t0.Add(2*time.Hour)))

	q := pricing.EffectivePrice(p, t0)

	assert.False(t, q.IsOnSale)
	assert.Equal(t, 100.0, q.UnitPrice)
}

func TestEffectivePriceNoStart(t *testing.T) {
	// No start means the discount runs until the end instant
	p := saleProduct(100, 50, nil, ts(t0.Add(time.Hour)))

	q := pricing.EffectivePrice(p, t0)

	assert.True(t, q.IsOnSale)
	assert.Equal(t, 50.0, q.UnitPrice)
}

func TestEffectivePriceNoEnd(t *testing.T) {
	p := saleProduct(100, 20, ts(t0), nil)

	q := pricing.EffectivePrice(p, t0.Add(time.Minute))

	assert.False(t, q.IsOnSale)
	assert.Equal(t, 100.0, q.UnitPrice)
}

func TestEffectivePriceNoDiscount(t *testing.T) {
	p := models.Product{Price: 42.5, SaleEndDateTime: ts(t0.Add(time.Hour))}

	q := pricing.EffectivePrice(p, t0)

	assert.False(t, q.IsOnSale)
	assert.Equal(t, 42.5, q.UnitPrice)
}

func TestEffectivePriceRepeatedCallsStable(t *testing.T) {
	p := saleProduct(19.99, 15, ts(t0), ts(t0.Add(time.Hour)))
	now := t0.Add(time.Minute)

	first := pricing.EffectivePrice(p, now).UnitPrice
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, pricing.EffectivePrice(p, now).UnitPrice)
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func TestClearExpired(t *testing.T) {
	db := openTestDB(t)

	expired := saleProduct(100, 20, ts(t0.Add(-2*time.Hour)), ts(t0.Add(-time.Hour)))
	require.NoError(t, db.Create(&expired).Error)

	require.NoError(t, pricing.ClearExpired(db, &expired, t0))

	assert.Nil(t, expired.DiscountPercentage)
	assert.Nil(t, expired.SaleStartDateTime)
	assert.Nil(t, expired.SaleEndDateTime)

	var stored models.Product
	require.NoError(t, db.First(&stored, expired.ID).Error)
	assert.Nil(t, stored.DiscountPercentage)
	assert.Nil(t, stored.SaleEndDateTime)
}

func TestClearExpiredLeavesActiveSale(t *testing.T) {
	db := openTestDB(t)

	active := saleProduct(100, 20, ts(t0), ts(t0.Add(time.Hour)))
	require.NoError(t, db.Create(&active).Error)

	require.NoError(t, pricing.ClearExpired(db, &active, t0.Add(time.Minute)))

	assert.NotNil(t, active.DiscountPercentage)

	var stored models.Product
	require.NoError(t, db.First(&stored, active.ID).Error)
	assert.NotNil(t, stored.DiscountPercentage)
	assert.NotNil(t, stored.SaleEndDateTime)
}

func TestExpireSales(t *testing.T) {
	db := openTestDB(t)

	expired := saleProduct(100, 20, ts(t0.Add(-2*time.Hour)), ts(t0.Add(-time.Hour)))
	active := saleProduct(200, 10, ts(t0), ts(t0.Add(time.Hour)))
	plain := models.Product{Title: "no sale", Price: 5}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&plain).Error)

	swept, err := pricing.ExpireSales(db, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	var stored models.Product
	require.NoError(t, db.First(&stored, expired.ID).Error)
	assert.Nil(t, stored.DiscountPercentage)

	stored = models.Product{}
	require.NoError(t, db.First(&stored, active.ID).Error)
	assert.NotNil(t, stored.DiscountPercentage)
}
