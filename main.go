package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/config"
	"github.com/grabbagreen/salad-ledger/middlewares"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/router"
	"github.com/grabbagreen/salad-ledger/utils"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai controller
	utils.InitDB(db)

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedCustomers(db)

	// Rate limiter global (50 request per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.AttendanceRecord{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedCustomers mengisi dua subscriber awal kalau tabel masih kosong
func seedCustomers(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	starters := []models.Customer{
		{Name: "Amit Kumar", Nickname: "Amit", Route: "A", Plan: "Premium", Status: "active"},
		{Name: "Sneha Reddy", Nickname: "Sneha", Route: "B", Plan: "Regular", Status: "active"},
	}
	if err := db.Create(&starters).Error; err != nil {
		utils.ErrorLogger.Printf("Seed failed: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded %d starter customers", len(starters))
}
