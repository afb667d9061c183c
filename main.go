package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Dokhanh15/Thuctap/config"
	"github.com/Dokhanh15/Thuctap/models"
	"github.com/Dokhanh15/Thuctap/pricing"
	"github.com/Dokhanh15/Thuctap/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis (payment rate limiting)
	rdb := rd.NewClient(&rd.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	// Gin setup
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // 32MB upload cap

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadsDir)

	// Setup routes
	routes.SetupRoutes(r, db, rdb, cfg)

	// Periodic sweep clearing expired sale windows; catalog reads do the
	// same lazily, the sweep covers products nobody reads.
	go startSaleExpirySweep(db, cfg.SaleSweepInterval)

	// Start server
	log.Printf("🚀 Server running on %s...", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.AppConfig) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startSaleExpirySweep bulk-clears expired sale fields on a fixed interval
func startSaleExpirySweep(db *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		swept, err := pricing.ExpireSales(db, time.Now())
		if err != nil {
			log.Printf("❌ Sale expiry sweep failed: %v", err)
		} else if swept > 0 {
			log.Printf("🧹 Sale expiry sweep cleared %d product(s)", swept)
		}
		<-ticker.C
	}
}
