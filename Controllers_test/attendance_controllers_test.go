package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/grabbagreen/salad-ledger/controllers"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
)

func setupTestDBForAttendance() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Customer{}, &models.AttendanceRecord{})
	if err != nil {
		panic(err)
	}
	db.Create(&models.Customer{
		Name:     "Amit Kumar",
		Nickname: "Amit",
		Route:    "A",
		Plan:     "Regular",
		Status:   "active",
	})
	return db
}

func setupAttendanceRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	svc := services.NewAttendanceService(db)
	attendanceCtrl := controllers.NewAttendanceController(db, svc)
	router.POST("/attendance", attendanceCtrl.RecordDailyStatus)
	router.POST("/attendance/undo", attendanceCtrl.Undo)
	router.POST("/customers/:customer_id/addon", attendanceCtrl.RequestAddon)
	router.GET("/attendance", attendanceCtrl.ListAttendance)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordAndUndoAttendance(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAttendance()
	router := setupAttendanceRouter(db)

	w := postJSON(t, router, "/attendance", map[string]interface{}{
		"cust_id": 1,
		"status":  "delivered",
		"date":    utils.Today(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Attendance recorded", resp["message"])

	// Duplikat untuk (cust, date) yang sama ditolak
	w = postJSON(t, router, "/attendance", map[string]interface{}{
		"cust_id": 1,
		"status":  "skipped",
		"date":    utils.Today(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Undo menghapus record tadi
	w = postJSON(t, router, "/attendance/undo", map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.AttendanceRecord{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// Undo kedua: slot kosong
	w = postJSON(t, router, "/attendance/undo", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackdatedWriteNeedsConfirmation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAttendance()
	router := setupAttendanceRouter(db)

	w := postJSON(t, router, "/attendance", map[string]interface{}{
		"cust_id": 1,
		"status":  "delivered",
		"date":    "2026-01-05",
	})
	// Tanggal bukan hari ini tanpa confirm_backdate -> tolak
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, router, "/attendance", map[string]interface{}{
		"cust_id":          1,
		"status":           "delivered",
		"date":             "2026-01-05",
		"confirm_backdate": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequestAddonEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAttendance()
	router := setupAttendanceRouter(db)

	w := postJSON(t, router, "/customers/1/addon", map[string]interface{}{
		"date": utils.Today(),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var cust models.Customer
	db.First(&cust, 1)
	assert.NotNil(t, cust.PendingAddonDate)
	assert.Equal(t, utils.Today(), *cust.PendingAddonDate)
}
