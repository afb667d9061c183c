package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProduct updates a product's fields. Only the form fields that are
// present are changed; sale fields submitted empty are cleared together.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		updates := make(map[string]interface{})

		if title := c.PostForm("title"); title != "" {
			updates["title"] = title
		}
		if description, ok := c.GetPostForm("description"); ok {
			updates["description"] = description
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = price
		}
		if categoryIDStr := c.PostForm("category_id"); categoryIDStr != "" {
			cid, err := strconv.ParseUint(categoryIDStr, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, uint(cid)).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			updates["category_id"] = uint(cid)
		}

		// Sale window: the three fields move as one unit. clear_sale drops
		// them, otherwise any provided field is re-validated as a group.
		if c.PostForm("clear_sale") == "true" {
			updates["discount_percentage"] = nil
			updates["sale_start_date_time"] = nil
			updates["sale_end_date_time"] = nil
		} else if hasSaleFields(c) {
			discount, saleStart, saleEnd, ok := parseSaleFields(c)
			if !ok {
				return
			}
			updates["discount_percentage"] = discount
			updates["sale_start_date_time"] = saleStart
			updates["sale_end_date_time"] = saleEnd
		}

		if imageURL, ok := saveProductImage(c, true); !ok {
			return
		} else if imageURL != "" {
			updates["image"] = imageURL
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		if err := db.Preload("Category").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func hasSaleFields(c *gin.Context) bool {
	return c.PostForm("discount_percentage") != "" ||
		c.PostForm("sale_start") != "" ||
		c.PostForm("sale_end") != ""
}
