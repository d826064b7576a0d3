package services

import (
	"encoding/json"
	"testing"

	"github.com/grabbagreen/salad-ledger/models"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotRoundTrip(t *testing.T) {
	db := setupLedgerDB(t)
	svc := NewAttendanceService(db)
	backups := NewBackupService(db)
	cust := seedCustomer(t, db, "Premium")

	_, err := svc.RecordDailyStatus(cust.ID, models.StatusDelivered, "2026-03-02", false)
	assert.NoError(t, err)
	_, err = svc.AdjustWalkInCounter("salad", 4, "2026-03-02")
	assert.NoError(t, err)

	snap, err := backups.ExportSnapshot()
	assert.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.NotEmpty(t, snap.Timestamp)
	assert.Len(t, snap.Customers, 1)
	assert.Len(t, snap.Attendance, 2)

	// Lewat JSON seperti file backup sungguhan
	raw, err := json.Marshal(snap)
	assert.NoError(t, err)
	var restored models.Snapshot
	assert.NoError(t, json.Unmarshal(raw, &restored))

	// Restore ke store kosong
	db2 := setupLedgerDB(t)
	backups2 := NewBackupService(db2)
	assert.NoError(t, backups2.ImportSnapshot(&restored))

	again, err := backups2.ExportSnapshot()
	assert.NoError(t, err)
	assert.Equal(t, snap.Customers[0].ID, again.Customers[0].ID)
	assert.Equal(t, snap.Customers[0].Name, again.Customers[0].Name)
	assert.Len(t, again.Attendance, 2)
	assert.Equal(t, snap.Attendance[0].Date, again.Attendance[0].Date)
	assert.Equal(t, snap.Attendance[1].Quantity, again.Attendance[1].Quantity)
}

func TestImportReplacesExistingData(t *testing.T) {
	db := setupLedgerDB(t)
	backups := NewBackupService(db)
	seedCustomer(t, db, "Regular")

	snap := &models.Snapshot{
		Version: models.SnapshotVersion,
		Customers: []models.Customer{
			{ID: 7, Name: "Sneha Reddy", Nickname: "Sneha", Route: "B", Plan: "Regular", Status: "active"},
		},
		Attendance: []models.AttendanceRecord{
			{ID: 3, CustID: 7, Date: "2026-03-02", Status: models.StatusSkipped, Quantity: 1},
		},
	}
	assert.NoError(t, backups.ImportSnapshot(snap))

	var customers []models.Customer
	db.Find(&customers)
	assert.Len(t, customers, 1)
	assert.EqualValues(t, 7, customers[0].ID)
	assert.Equal(t, "Sneha Reddy", customers[0].Name)
}

func TestImportRejectsMalformedPayloadWithoutTouchingStore(t *testing.T) {
	db := setupLedgerDB(t)
	svc := NewAttendanceService(db)
	backups := NewBackupService(db)
	cust := seedCustomer(t, db, "Regular")
	_, err := svc.RecordDailyStatus(cust.ID, models.StatusDelivered, "2026-03-02", false)
	assert.NoError(t, err)

	bad := []*models.Snapshot{
		nil,
		{Version: 2},
		{Version: 1, Customers: []models.Customer{{Name: ""}}},
		{Version: 1, Attendance: []models.AttendanceRecord{{CustID: 1, Date: "not-a-date", Status: "delivered"}}},
		{Version: 1, Attendance: []models.AttendanceRecord{{CustID: 1, Date: "2026-03-02", Status: "vanished"}}},
		{Version: 1, Attendance: []models.AttendanceRecord{
			{CustID: 1, Date: "2026-03-02", Status: "delivered"},
			{CustID: 1, Date: "2026-03-02", Status: "skipped"},
		}},
	}

	for _, snap := range bad {
		err := backups.ImportSnapshot(snap)
		assert.ErrorIs(t, err, ErrBadSnapshot)
	}

	// Data lama tidak tersentuh
	var custCount, recCount int64
	db.Model(&models.Customer{}).Count(&custCount)
	db.Model(&models.AttendanceRecord{}).Count(&recCount)
	assert.EqualValues(t, 1, custCount)
	assert.EqualValues(t, 1, recCount)
}
