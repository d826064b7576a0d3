package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB  *gorm.DB
	Svc *services.AttendanceService
}

func NewAttendanceController(db *gorm.DB, svc *services.AttendanceService) *AttendanceController {
	return &AttendanceController{DB: db, Svc: svc}
}

var ErrBackdateConfirm = &CustomError{"selected date differs from today; set confirm_backdate to proceed"}
var ErrResumeConfirm = &CustomError{"resuming clears future vacation records; set confirm to proceed"}

// Tulisan untuk tanggal selain hari ini harus dikonfirmasi eksplisit
// oleh pemanggil (pengganti dialog confirm di UI).
func requireDateConfirm(date string, confirmed bool) error {
	if date != utils.Today() && !confirmed {
		return ErrBackdateConfirm
	}
	return nil
}

// RecordDailyStatus -> swipe harian: delivered atau skipped
func (ac *AttendanceController) RecordDailyStatus(c *gin.Context) {
	type reqBody struct {
		CustID              uint   `json:"cust_id" binding:"required"`
		Status              string `json:"status" binding:"required"`
		Date                string `json:"date" binding:"required"`
		ConfirmBackdate     bool   `json:"confirm_backdate"`
		ConfirmAddonRemoval bool   `json:"confirm_addon_removal"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := requireDateConfirm(req.Date, req.ConfirmBackdate); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	record, err := ac.Svc.RecordDailyStatus(req.CustID, req.Status, req.Date, req.ConfirmAddonRemoval)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Attendance recorded: cust=%d date=%s status=%s addons=%d",
		record.CustID, record.Date, record.Status, record.Addons)

	utils.RespondJSON(c, http.StatusCreated, "Attendance recorded", record)
}

// RequestAddon -> tandai bowl berikutnya dengan add-on
func (ac *AttendanceController) RequestAddon(c *gin.Context) {
	custID, _ := strconv.Atoi(c.Param("customer_id"))

	type reqBody struct {
		Date            string `json:"date" binding:"required"`
		ConfirmBackdate bool   `json:"confirm_backdate"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := requireDateConfirm(req.Date, req.ConfirmBackdate); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	customer, err := ac.Svc.RequestAddon(uint(custID), req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Add-on marked for this bowl", customer)
}

// BookVacation -> auto-fill skipped untuk beberapa hari ke depan
func (ac *AttendanceController) BookVacation(c *gin.Context) {
	custID, _ := strconv.Atoi(c.Param("customer_id"))

	type reqBody struct {
		Days            int    `json:"days" binding:"required"`
		StartDate       string `json:"start_date" binding:"required"`
		ConfirmBackdate bool   `json:"confirm_backdate"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := requireDateConfirm(req.StartDate, req.ConfirmBackdate); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	created, resume, err := ac.Svc.BookVacation(uint(custID), req.Days, req.StartDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Vacation booked: cust=%d days=%d resume=%s", custID, req.Days, resume)

	utils.RespondJSON(c, http.StatusOK, "Vacation set", gin.H{
		"records_created": created,
		"vacation_until":  resume,
	})
}

// ResumeVacation -> customer pulang lebih awal; hapus auto-fill ke depan.
// Destruktif, butuh confirm eksplisit.
func (ac *AttendanceController) ResumeVacation(c *gin.Context) {
	custID, _ := strconv.Atoi(c.Param("customer_id"))

	type reqBody struct {
		Confirm bool `json:"confirm"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !req.Confirm {
		utils.RespondError(c, http.StatusConflict, ErrResumeConfirm)
		return
	}

	deleted, err := ac.Svc.ResumeVacationEarly(uint(custID), utils.Today())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer is back, card reactivated", gin.H{
		"records_deleted": deleted,
	})
}

// Undo -> balikkan tepat satu aksi terakhir
func (ac *AttendanceController) Undo(c *gin.Context) {
	msg, err := ac.Svc.UndoLastAction()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Undone: "+msg, nil)
}

// ListAttendance -> entri ledger, filter ?date= ?cust_id= ?from= ?to=
func (ac *AttendanceController) ListAttendance(c *gin.Context) {
	query := ac.DB.Order("date, cust_id")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if custID := c.Query("cust_id"); custID != "" {
		query = query.Where("cust_id = ?", custID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date < ?", to)
	}

	var records []models.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Attendance records", records)
}

// respondServiceError memetakan error engine ke status HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBusy),
		errors.Is(err, services.ErrDuplicateRecord),
		errors.Is(err, services.ErrAddonNeedsConfirm):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidWalkInKind),
		errors.Is(err, services.ErrInvalidVacationDays),
		errors.Is(err, services.ErrNothingToUndo),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrBadSnapshot):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
