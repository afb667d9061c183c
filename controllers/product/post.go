package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const productUploadDir = "uploads/products"
const productPublicPath = "/uploads/products"

// CreateProduct creates a new product with an optional sale window and image upload.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		title := c.PostForm("title")
		priceStr := c.PostForm("price")
		if title == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and price are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		// Optional fields
		description := c.PostForm("description")
		categoryIDStr := c.PostForm("category_id")

		var categoryID *uint
		if categoryIDStr != "" {
			cid, parseErr := strconv.ParseUint(categoryIDStr, 10, 32)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, uint(cid)).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			id := uint(cid)
			categoryID = &id
		}

		discount, saleStart, saleEnd, ok := parseSaleFields(c)
		if !ok {
			return
		}

		// Image upload
		imageURL, ok := saveProductImage(c, false)
		if !ok {
			return
		}

		newProduct := models.Product{
			Title:              title,
			Description:        description,
			Price:              price,
			Image:              imageURL,
			CategoryID:         categoryID,
			DiscountPercentage: discount,
			SaleStartDateTime:  saleStart,
			SaleEndDateTime:    saleEnd,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}

// parseSaleFields reads and validates discount_percentage, sale_start and
// sale_end (RFC3339) from the form. Sale validation happens here, at write
// time; reads assume persisted data is valid.
func parseSaleFields(c *gin.Context) (*float64, *time.Time, *time.Time, bool) {
	var discount *float64
	var saleStart, saleEnd *time.Time

	if s := c.PostForm("discount_percentage"); s != "" {
		pct, err := strconv.ParseFloat(s, 64)
		if err != nil || pct < 0 || pct > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percentage must be between 0 and 100"})
			return nil, nil, nil, false
		}
		discount = &pct
	}
	if s := c.PostForm("sale_start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sale_start must be RFC3339"})
			return nil, nil, nil, false
		}
		saleStart = &t
	}
	if s := c.PostForm("sale_end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sale_end must be RFC3339"})
			return nil, nil, nil, false
		}
		saleEnd = &t
	}
	if saleStart != nil && saleEnd != nil && !saleEnd.After(*saleStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_end must be after sale_start"})
		return nil, nil, nil, false
	}
	if discount != nil && saleEnd == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_end is required with discount_percentage"})
		return nil, nil, nil, false
	}
	return discount, saleStart, saleEnd, true
}

// saveProductImage writes the uploaded image to disk and returns its public
// URL. When optional is true a missing file is fine and returns "".
func saveProductImage(c *gin.Context, optional bool) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if optional {
			return "", true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return "", false
	}

	if err := os.MkdirAll(productUploadDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
		return "", false
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
	savePath := filepath.Join(productUploadDir, filename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
		return "", false
	}

	return fmt.Sprintf("%s/%s", productPublicPath, filename), true
}
