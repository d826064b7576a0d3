package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB membuka koneksi database sesuai env.
// Default: sqlite file lokal (aplikasi single-writer), set DB_DRIVER=mysql
// plus DB_DSN untuk deployment bersama.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				os.Getenv("DB_HOST"),
				os.Getenv("DB_PORT"),
				os.Getenv("DB_NAME"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "salad_ledger.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
