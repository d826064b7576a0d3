package services

import (
	"fmt"
	"time"

	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

var ErrBadSnapshot = &ServiceError{"invalid backup payload"}

// BackupService membaca/menulis seluruh ledger sebagai satu snapshot.
type BackupService struct {
	DB *gorm.DB
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{DB: db}
}

// ExportSnapshot menyalin kedua koleksi apa adanya, tanpa filter.
func (s *BackupService) ExportSnapshot() (*models.Snapshot, error) {
	customers := []models.Customer{}
	attendance := []models.AttendanceRecord{}

	if err := s.DB.Order("id").Find(&customers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Order("id").Find(&attendance).Error; err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Version:    models.SnapshotVersion,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Customers:  customers,
		Attendance: attendance,
	}, nil
}

// ImportSnapshot mengganti isi ledger dengan isi snapshot. Payload
// divalidasi penuh dulu; baru clear + bulk insert dalam satu transaksi,
// supaya input rusak tidak pernah menyentuh data lama.
func (s *BackupService) ImportSnapshot(snap *models.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.AttendanceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}

		if len(snap.Customers) > 0 {
			if err := tx.CreateInBatches(&snap.Customers, 100).Error; err != nil {
				return err
			}
		}
		if len(snap.Attendance) > 0 {
			if err := tx.CreateInBatches(&snap.Attendance, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func validateSnapshot(snap *models.Snapshot) error {
	if snap == nil {
		return ErrBadSnapshot
	}
	if snap.Version != models.SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, snap.Version)
	}

	for i, c := range snap.Customers {
		if c.Name == "" {
			return fmt.Errorf("%w: customer %d has no name", ErrBadSnapshot, i)
		}
		if c.VacationUntil != nil {
			if _, err := utils.ParseDate(*c.VacationUntil); err != nil {
				return fmt.Errorf("%w: customer %d has bad vacation_until", ErrBadSnapshot, i)
			}
		}
		if c.PendingAddonDate != nil {
			if _, err := utils.ParseDate(*c.PendingAddonDate); err != nil {
				return fmt.Errorf("%w: customer %d has bad pending_addon_date", ErrBadSnapshot, i)
			}
		}
	}

	seen := make(map[string]bool, len(snap.Attendance))
	for i, r := range snap.Attendance {
		if _, err := utils.ParseDate(r.Date); err != nil {
			return fmt.Errorf("%w: record %d has bad date %q", ErrBadSnapshot, i, r.Date)
		}
		if r.Status != models.StatusDelivered && r.Status != models.StatusSkipped {
			return fmt.Errorf("%w: record %d has bad status %q", ErrBadSnapshot, i, r.Status)
		}
		if r.Addons < 0 || r.Quantity < 0 {
			return fmt.Errorf("%w: record %d has negative counters", ErrBadSnapshot, i)
		}
		key := fmt.Sprintf("%d/%s", r.CustID, r.Date)
		if seen[key] {
			return fmt.Errorf("%w: duplicate record for customer %d on %s", ErrBadSnapshot, r.CustID, r.Date)
		}
		seen[key] = true
	}

	return nil
}
