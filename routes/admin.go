package routes

import (
	cartControllers "github.com/Dokhanh15/Thuctap/controllers/cart"
	productcontroller "github.com/Dokhanh15/Thuctap/controllers/product"
	userControllers "github.com/Dokhanh15/Thuctap/controllers/user"
	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
