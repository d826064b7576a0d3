package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/utils"
	"github.com/stretchr/testify/assert"
)

func TestComputeInvoiceRoundsAtTotal(t *testing.T) {
	db := setupLedgerDB(t)
	svc := NewAttendanceService(db)
	invoices := NewInvoiceService(db)
	cust := seedCustomer(t, db, "Regular")

	// 10 bowls diantar (2 Maret dst, semua hari kerja), 2 add-on
	date := "2026-03-02"
	for i := 0; i < 10; i++ {
		if i < 2 {
			_, err := svc.RequestAddon(cust.ID, date)
			assert.NoError(t, err)
		}
		_, err := svc.RecordDailyStatus(cust.ID, models.StatusDelivered, date, false)
		assert.NoError(t, err)
		date = nextWorkday(date)
	}

	inv, err := invoices.ComputeInvoice(cust.ID, "2026-03-01", "2026-04-01", false)
	assert.NoError(t, err)
	assert.Equal(t, 10, inv.DeliveredCount)
	assert.Equal(t, 2, inv.AddonsCount)
	// round(10 * 5000/26 + 2*100) = round(1923.08 + 200) = 2123
	assert.Equal(t, 2123, inv.Total)
}

func nextWorkday(date string) string {
	next := utils.AddDays(date, 1)
	for utils.IsSunday(next) {
		next = utils.AddDays(next, 1)
	}
	return next
}

func TestComputeInvoiceSundayExclusion(t *testing.T) {
	db := setupLedgerDB(t)
	invoices := NewInvoiceService(db)
	cust := seedCustomer(t, db, "Premium")

	// Minggu 1 Maret + Senin 2 Maret, dua-duanya delivered dengan add-on
	for _, d := range []string{"2026-03-01", "2026-03-02"} {
		rec := models.AttendanceRecord{
			CustID: cust.ID, Date: d, Status: models.StatusDelivered, Addons: 1, Quantity: 1,
		}
		assert.NoError(t, db.Create(&rec).Error)
	}

	withSunday, err := invoices.ComputeInvoice(cust.ID, "2026-03-01", "2026-04-01", false)
	assert.NoError(t, err)
	assert.Equal(t, 2, withSunday.DeliveredCount)
	assert.Equal(t, 2, withSunday.AddonsCount)

	noSunday, err := invoices.ComputeInvoice(cust.ID, "2026-03-01", "2026-04-01", true)
	assert.NoError(t, err)
	assert.Equal(t, 1, noSunday.DeliveredCount)
	assert.Equal(t, 1, noSunday.AddonsCount)
}

func TestComputeInvoicePeriodBoundsExclusive(t *testing.T) {
	db := setupLedgerDB(t)
	invoices := NewInvoiceService(db)
	cust := seedCustomer(t, db, "Regular")

	for _, d := range []string{"2026-02-28", "2026-03-02", "2026-03-31", "2026-04-01"} {
		rec := models.AttendanceRecord{
			CustID: cust.ID, Date: d, Status: models.StatusDelivered, Quantity: 1,
		}
		assert.NoError(t, db.Create(&rec).Error)
	}

	inv, err := invoices.ComputeInvoice(cust.ID, "2026-03-01", "2026-04-01", false)
	assert.NoError(t, err)
	// Hanya 2 Maret dan 31 Maret yang masuk [start, end)
	assert.Equal(t, 2, inv.DeliveredCount)
}

func TestGenerateAllInvoicesWritesPDFs(t *testing.T) {
	db := setupLedgerDB(t)
	invoices := NewInvoiceService(db)
	cust := seedCustomer(t, db, "Regular")

	inactive := models.Customer{
		Name: "Sneha Reddy", Nickname: "Sneha", Route: "B", Plan: "Regular", Status: "inactive",
	}
	assert.NoError(t, db.Create(&inactive).Error)

	rec := models.AttendanceRecord{
		CustID: cust.ID, Date: "2026-03-02", Status: models.StatusDelivered, Quantity: 1,
	}
	assert.NoError(t, db.Create(&rec).Error)

	dir := t.TempDir()
	files, err := invoices.GenerateAllInvoices("2026-03-15", dir)
	assert.NoError(t, err)

	// Hanya customer aktif yang dapat tagihan
	assert.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "Invoice_Amit_March.pdf"), files[0])

	info, err := os.Stat(files[0])
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPerBowlPriceUnrounded(t *testing.T) {
	// 5000/26 tidak dibulatkan di tahap per-bowl
	assert.InDelta(t, 192.3077, models.PerBowlPrice("Regular"), 0.001)
	assert.Equal(t, "192.31", fmt.Sprintf("%.2f", models.PerBowlPrice("Regular")))
}
