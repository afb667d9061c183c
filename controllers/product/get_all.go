package productcontroller

import (
	"net/http"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists products, optionally filtered by category name and a
// title substring. Query params: category, query.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryName := c.Query("category")
		search := c.Query("query")

		query := db.Model(&models.Product{}).Preload("Category")

		if categoryName != "" {
			var category models.Category
			if err := db.Where("name = ?", categoryName).First(&category).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					// Unknown category filters everything out, not an error
					c.JSON(http.StatusOK, []models.Product{})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
				return
			}
			query = query.Where("category_id = ?", category.ID)
		}

		if search != "" {
			query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
		}

		var products []models.Product
		if err := query.Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		// Lazy expiry: clear sale info that ran out since the last read
		now := time.Now()
		for i := range products {
			if err := pricing.ClearExpired(db, &products[i], now); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expire sale fields"})
				return
			}
		}

		c.JSON(http.StatusOK, products)
	}
}
