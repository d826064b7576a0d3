package models

import (
	"time"
)

// Customer adalah subscriber langganan harian (satu bowl per hari antar).
// VacationUntil != nil berarti auto-skip masih berlaku sampai tanggal itu
// (exclusive, hari pertama layanan normal lagi).
// PendingAddonDate != nil berarti bowl berikutnya di tanggal itu ditagih
// dengan satu add-on; flag dihapus begitu record attendance apapun dibuat.
type Customer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`
	Nickname         string    `gorm:"type:varchar(50);not null" json:"nickname"`
	Route            string    `gorm:"type:varchar(10);not null" json:"route"`
	Plan             string    `gorm:"type:varchar(20);not null;default:'Regular'" json:"plan"`
	Status           string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	VacationUntil    *string   `gorm:"type:varchar(10)" json:"vacation_until"`
	PendingAddonDate *string   `gorm:"type:varchar(10)" json:"pending_addon_date"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
