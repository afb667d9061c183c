package routes

import (
	authControllers "github.com/Dokhanh15/Thuctap/controllers/auth"
	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))

		protected := authGroup.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.GET("/profile", authControllers.GetProfile(db))
			protected.PUT("/profile", authControllers.UpdateProfile(db))
			protected.POST("/check-password", authControllers.CheckPassword(db))
		}
	}
}
