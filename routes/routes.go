package routes

import (
	"github.com/Dokhanh15/Thuctap/config"
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) {
	// Public auth routes plus JWT-protected profile routes
	SetupAuthRoutes(r, db)

	// Public catalog
	SetupProductRoutes(r, db)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db)

	// Payment routes
	SetupPaymentRoutes(r, db, rdb, cfg)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
