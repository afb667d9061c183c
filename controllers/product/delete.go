package productcontroller

import (
	"net/http"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct removes a product. Cart lines referencing it are removed in
// the same transaction so no cart is left pointing at a product that no
// longer exists.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
