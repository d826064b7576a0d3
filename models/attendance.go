package models

import (
	"time"
)

// WalkInCustID adalah sentinel pemilik agregat walk-in harian.
const WalkInCustID uint = 0

const (
	StatusDelivered = "delivered"
	StatusSkipped   = "skipped"
)

// AttendanceRecord adalah satu entri ledger harian. Untuk subscriber,
// paling banyak satu record per (cust_id, date). Untuk cust_id = 0
// satu record per tanggal menampung counter penjualan walk-in
// (Quantity = salad, Addons = add-on).
type AttendanceRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustID     uint      `gorm:"uniqueIndex:idx_cust_date" json:"cust_id"`
	Date       string    `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_cust_date" json:"date"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Addons     int       `gorm:"not null;default:0" json:"addons"`
	IsWalkIn   bool      `gorm:"not null;default:false" json:"is_walk_in"`
	IsVacation bool      `gorm:"not null;default:false" json:"is_vacation"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
