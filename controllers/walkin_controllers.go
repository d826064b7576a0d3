package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type WalkInController struct {
	DB  *gorm.DB
	Svc *services.AttendanceService
}

func NewWalkInController(db *gorm.DB, svc *services.AttendanceService) *WalkInController {
	return &WalkInController{DB: db, Svc: svc}
}

// AdjustCounter -> geser counter penjualan walk-in (salad/addon) per hari.
// Delta negatif adalah koreksi; counter tidak pernah di bawah nol.
func (wc *WalkInController) AdjustCounter(c *gin.Context) {
	type reqBody struct {
		Kind            string `json:"kind" binding:"required"`
		Delta           int    `json:"delta" binding:"required"`
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

	rec, err := wc.Svc.AdjustWalkInCounter(req.Kind, req.Delta, req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Walk-in counter updated", gin.H{
		"date":   rec.Date,
		"salads": rec.Quantity,
		"addons": rec.Addons,
		"amount": rec.Quantity*models.WalkInUnitPrice + rec.Addons*models.AddonUnitPrice,
	})
}

// GetCounters -> agregat walk-in untuk ?date= (default hari ini)
func (wc *WalkInController) GetCounters(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.Today()
	}

	salads, addons, err := wc.Svc.WalkInCounters(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Walk-in counters", gin.H{
		"date":   date,
		"salads": salads,
		"addons": addons,
		"amount": salads*models.WalkInUnitPrice + addons*models.AddonUnitPrice,
	})
}
