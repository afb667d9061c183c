package productcontroller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	productcontroller "github.com/Dokhanh15/Thuctap/controllers/product"
	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func newProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func ptr[T any](v T) *T { return &v }

func TestGetProductsFilters(t *testing.T) {
	db := openTestDB(t)
	shoes := models.Category{Name: "shoes"}
	require.NoError(t, db.Create(&shoes).Error)
	require.NoError(t, db.Create(&models.Product{Title: "Runner Pro", Price: 120, CategoryID: &shoes.ID}).Error)
	require.NoError(t, db.Create(&models.Product{Title: "Desk Lamp", Price: 40}).Error)
	r := newProductRouter(db)

	w := get(t, r, "/products")
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	assert.Len(t, products, 2)

	w = get(t, r, "/products?category=shoes")
	require.Equal(t, http.StatusOK, w.Code)
	products = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Runner Pro", products[0].Title)

	// Case-insensitive title search
	w = get(t, r, "/products?query=runner")
	require.Equal(t, http.StatusOK, w.Code)
	products = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Runner Pro", products[0].Title)

	// Unknown category is an empty list, not an error
	w = get(t, r, "/products?category=hats")
	require.Equal(t, http.StatusOK, w.Code)
	products = nil
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	assert.Empty(t, products)
}

func TestGetProductsClearsExpiredSales(t *testing.T) {
	db := openTestDB(t)
	past := time.Now().Add(-time.Hour)
	expired := models.Product{
		Title:              "Old Deal",
		Price:              100,
		DiscountPercentage: ptr(25.0),
		SaleEndDateTime:    &past,
	}
	require.NoError(t, db.Create(&expired).Error)
	r := newProductRouter(db)

	w := get(t, r, "/products")
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 1)

	// Response carries no stale sale fields
	assert.Nil(t, products[0].DiscountPercentage)
	assert.Nil(t, products[0].SaleEndDateTime)

	// And the row itself was cleaned up
	var stored models.Product
	require.NoError(t, db.First(&stored, expired.ID).Error)
	assert.Nil(t, stored.DiscountPercentage)
	assert.Nil(t, stored.SaleEndDateTime)
}

func TestGetProductByIDKeepsActiveSale(t *testing.T) {
	db := openTestDB(t)
	end := time.Now().Add(time.Hour)
	onSale := models.Product{
		Title:              "Hot Deal",
		Price:              100,
		DiscountPercentage: ptr(20.0),
		SaleEndDateTime:    &end,
	}
	require.NoError(t, db.Create(&onSale).Error)
	r := newProductRouter(db)

	w := get(t, r, fmt.Sprintf("/products/%d", onSale.ID))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.NotNil(t, got.DiscountPercentage)
	assert.Equal(t, 20.0, *got.DiscountPercentage)

	w = get(t, r, "/products/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
