package productcontroller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProductByID returns a single product with its category.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		if err := pricing.ClearExpired(db, &product, time.Now()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expire sale fields"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
