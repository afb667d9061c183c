package routes

import (
	cartControllers "github.com/Dokhanh15/Thuctap/controllers/cart"
	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/carts/*" endpoints. Requires JWT
// middleware; handlers additionally verify the cart belongs to the caller.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/carts")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("/user/:userId", cartControllers.GetUserCart(db))                            // fetch canonical cart
		cartGroup.POST("", cartControllers.CreateCart(db))                                         // create cart with first line
		cartGroup.PUT("/:cartId", cartControllers.UpdateCartItem(db))                              // add/update a line
		cartGroup.DELETE("/user/:userId/product/:productId", cartControllers.DeleteCartItem(db))   // remove a line
		cartGroup.DELETE("/user/:userId", cartControllers.ClearUserCart(db))                       // empty the cart
	}
}
