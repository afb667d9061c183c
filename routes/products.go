package routes

import (
	productcontroller "github.com/Dokhanh15/Thuctap/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints. No auth:
// browsing is open to everyone.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))                      // GET /products?category=&query=
	r.GET("/products/:id", productcontroller.GetProductByID(db))               // GET /products/:id
	r.GET("/products/:id/sale/stream", productcontroller.SaleCountdownStream(db)) // websocket countdown

	r.GET("/categories", productcontroller.GetAllCategories(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))
}
