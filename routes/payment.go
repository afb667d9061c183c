package routes

import (
	"github.com/Dokhanh15/Thuctap/config"
	paymentControllers "github.com/Dokhanh15/Thuctap/controllers/payment"
	"github.com/Dokhanh15/Thuctap/middleware"
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupPaymentRoutes registers the VNPay endpoints. Creation is JWT-gated
// and rate-limited; the gateway callbacks authenticate via their checksum.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, rdb *rd.Client, cfg config.AppConfig) {
	paymentGroup := r.Group("/payment")
	{
		paymentGroup.POST("/create-payment",
			middleware.ValidateToken,
			middleware.RedisRateLimit(rdb, cfg.PayRateLimit, cfg.PayRateWindow),
			paymentControllers.CreatePayment(db))
		paymentGroup.GET("/vnpay-return", paymentControllers.VNPayReturn(db))
		paymentGroup.POST("/vnpay-ipn", paymentControllers.VNPayIPN(db))
	}
}
