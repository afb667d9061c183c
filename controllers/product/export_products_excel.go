package productcontroller

import (
	"net/http"

	"github.com/Dokhanh15/Thuctap/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Title", "Description", "Price", "Image", "Category",
			"DiscountPercentage", "SaleStart", "SaleEnd", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Image)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			if p.DiscountPercentage != nil {
				row.AddCell().SetValue(*p.DiscountPercentage)
			} else {
				row.AddCell().SetValue("")
			}
			if p.SaleStartDateTime != nil {
				row.AddCell().SetValue(p.SaleStartDateTime.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
			if p.SaleEndDateTime != nil {
				row.AddCell().SetValue(p.SaleEndDateTime.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		// Write file to response
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
