package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

var (
	ErrBusy                = &ServiceError{"another attendance write is in progress"}
	ErrDuplicateRecord     = &ServiceError{"attendance record already exists for this customer and date"}
	ErrAddonNeedsConfirm   = &ServiceError{"customer has a pending add-on; confirm removal to skip"}
	ErrInvalidStatus       = &ServiceError{"status must be 'delivered' or 'skipped'"}
	ErrInvalidWalkInKind   = &ServiceError{"walk-in kind must be 'salad' or 'addon'"}
	ErrInvalidVacationDays = &ServiceError{"vacation days must be at least 1"}
	ErrNothingToUndo       = &ServiceError{"nothing to undo"}
	ErrInvalidDate         = &ServiceError{"date must be YYYY-MM-DD"}
)

type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

const (
	actionAttendance = "attendance"
	actionAddon      = "addon"
)

// lastAction adalah slot undo satu langkah. Satu slot saja, bukan stack.
type lastAction struct {
	kind     string
	recordID uint
	custID   uint
}

// AttendanceService memegang aturan bisnis ledger harian: catat antar/skip,
// add-on, vacation, walk-in, dan undo. Busy flag dan slot undo milik
// instance ini, bukan global proses.
type AttendanceService struct {
	DB *gorm.DB

	mu         sync.Mutex
	processing bool
	last       *lastAction
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

// RecordDailyStatus membuat record harian untuk satu customer.
// Kalau customer punya pending add-on untuk tanggal itu: delivered menagih
// satu add-on, skipped butuh confirmAddonRemoval. Flag pending dihapus
// begitu record tertulis, apapun statusnya.
func (s *AttendanceService) RecordDailyStatus(custID uint, status, date string, confirmAddonRemoval bool) (*models.AttendanceRecord, error) {
	if status != models.StatusDelivered && status != models.StatusSkipped {
		return nil, ErrInvalidStatus
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	// Busy guard: submit ganda ditolak, tidak diantri.
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.processing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	var customer models.Customer
	if err := s.DB.First(&customer, custID).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.AttendanceRecord{}).
		Where("cust_id = ? AND date = ?", custID, date).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRecord
	}

	hasPendingAddon := customer.PendingAddonDate != nil && *customer.PendingAddonDate == date

	if status == models.StatusSkipped && hasPendingAddon && !confirmAddonRemoval {
		return nil, ErrAddonNeedsConfirm
	}

	// Add-on hanya ditagih kalau diminta DAN diantar.
	addons := 0
	if status == models.StatusDelivered && hasPendingAddon {
		addons = 1
	}

	record := models.AttendanceRecord{
		CustID:   custID,
		Date:     date,
		Status:   status,
		Addons:   addons,
		Quantity: 1,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).Where("id = ?", custID).
			Update("pending_addon_date", nil).Error
	})
	if err != nil {
		return nil, err
	}

	s.setLastAction(&lastAction{kind: actionAttendance, recordID: record.ID, custID: custID})
	return &record, nil
}

// RequestAddon menandai bowl berikutnya di tanggal itu dengan satu add-on.
// Idempotent kalau sudah di-set ke tanggal yang sama. Tidak membuat record.
func (s *AttendanceService) RequestAddon(custID uint, date string) (*models.Customer, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var customer models.Customer
	if err := s.DB.First(&customer, custID).Error; err != nil {
		return nil, err
	}

	if customer.PendingAddonDate != nil && *customer.PendingAddonDate == date {
		return &customer, nil
	}

	if err := s.DB.Model(&customer).Update("pending_addon_date", date).Error; err != nil {
		return nil, err
	}
	customer.PendingAddonDate = &date

	s.setLastAction(&lastAction{kind: actionAddon, custID: custID})
	return &customer, nil
}

// BookVacation mengisi [start, start+days) dengan record skipped
// bertanda vacation. Tanggal yang sudah punya record dilewati, tidak
// ditimpa. Operasi multi-record, tidak masuk slot undo.
// Returns jumlah record baru dan tanggal layanan normal lagi.
func (s *AttendanceService) BookVacation(custID uint, days int, start string) (int, string, error) {
	if days < 1 {
		return 0, "", ErrInvalidVacationDays
	}
	if _, err := utils.ParseDate(start); err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}

	var customer models.Customer
	if err := s.DB.First(&customer, custID).Error; err != nil {
		return 0, "", err
	}

	created := 0
	for i := 0; i < days; i++ {
		date := utils.AddDays(start, i)

		var count int64
		if err := s.DB.Model(&models.AttendanceRecord{}).
			Where("cust_id = ? AND date = ?", custID, date).
			Count(&count).Error; err != nil {
			return created, "", err
		}
		if count > 0 {
			// Entri yang sudah ada menang atas auto-fill
			utils.InfoLogger.Printf("Vacation fill: day %s already has a record, skipping", date)
			continue
		}

		rec := models.AttendanceRecord{
			CustID:     custID,
			Date:       date,
			Status:     models.StatusSkipped,
			IsVacation: true,
			Quantity:   1,
		}
		if err := s.DB.Create(&rec).Error; err != nil {
			return created, "", err
		}
		created++
	}

	resume := utils.AddDays(start, days)
	if err := s.DB.Model(&models.Customer{}).Where("id = ?", custID).
		Update("vacation_until", resume).Error; err != nil {
		return created, "", err
	}

	return created, resume, nil
}

// ResumeVacationEarly menghapus record vacation dari today ke depan dan
// mengosongkan vacationUntil. Record lama atau buatan manual tidak disentuh.
func (s *AttendanceService) ResumeVacationEarly(custID uint, today string) (int64, error) {
	if _, err := utils.ParseDate(today); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, today)
	}

	var customer models.Customer
	if err := s.DB.First(&customer, custID).Error; err != nil {
		return 0, err
	}

	res := s.DB.Where("cust_id = ? AND date >= ? AND is_vacation = ?", custID, today, true).
		Delete(&models.AttendanceRecord{})
	if res.Error != nil {
		return 0, res.Error
	}

	if err := s.DB.Model(&models.Customer{}).Where("id = ?", custID).
		Update("vacation_until", nil).Error; err != nil {
		return res.RowsAffected, err
	}

	return res.RowsAffected, nil
}

// AdjustWalkInCounter menggeser counter penjualan walk-in harian
// (satu record agregat per tanggal di bawah sentinel cust 0).
// Counter tidak pernah turun di bawah nol.
func (s *AttendanceService) AdjustWalkInCounter(kind string, delta int, date string) (*models.AttendanceRecord, error) {
	if kind != "salad" && kind != "addon" {
		return nil, ErrInvalidWalkInKind
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var rec models.AttendanceRecord
	err := s.DB.Where("cust_id = ? AND date = ?", models.WalkInCustID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.AttendanceRecord{
			CustID:   models.WalkInCustID,
			Date:     date,
			Status:   models.StatusDelivered,
			IsWalkIn: true,
			Quantity: 0,
		}
	} else if err != nil {
		return nil, err
	}

	if kind == "salad" {
		rec.Quantity += delta
		if rec.Quantity < 0 {
			rec.Quantity = 0
		}
	} else {
		rec.Addons += delta
		if rec.Addons < 0 {
			rec.Addons = 0
		}
	}

	if err := s.DB.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// WalkInCounters returns the per-day walk-in aggregate (zeros when absent).
func (s *AttendanceService) WalkInCounters(date string) (salad int, addons int, err error) {
	var rec models.AttendanceRecord
	e := s.DB.Where("cust_id = ? AND date = ?", models.WalkInCustID, date).First(&rec).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return 0, 0, nil
	}
	if e != nil {
		return 0, 0, e
	}
	return rec.Quantity, rec.Addons, nil
}

// UndoLastAction membalik tepat satu aksi terakhir (attendance write atau
// add-on request). Slot dikosongkan setelah dipakai; panggilan kedua no-op.
func (s *AttendanceService) UndoLastAction() (string, error) {
	s.mu.Lock()
	action := s.last
	s.last = nil
	s.mu.Unlock()

	if action == nil {
		return "", ErrNothingToUndo
	}

	switch action.kind {
	case actionAttendance:
		if err := s.DB.Delete(&models.AttendanceRecord{}, action.recordID).Error; err != nil {
			return "", err
		}
		return "attendance record removed", nil
	default:
		if err := s.DB.Model(&models.Customer{}).Where("id = ?", action.custID).
			Update("pending_addon_date", nil).Error; err != nil {
			return "", err
		}
		return "pending add-on cleared", nil
	}
}

func (s *AttendanceService) setLastAction(a *lastAction) {
	s.mu.Lock()
	s.last = a
	s.mu.Unlock()
}
