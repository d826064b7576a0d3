package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type BoardController struct {
	DB  *gorm.DB
	Svc *services.AttendanceService
}

func NewBoardController(db *gorm.DB, svc *services.AttendanceService) *BoardController {
	return &BoardController{DB: db, Svc: svc}
}

// BoardEntry menggabungkan customer dengan record hari itu (kalau ada).
type BoardEntry struct {
	Customer   models.Customer          `json:"customer"`
	Entry      *models.AttendanceRecord `json:"entry,omitempty"`
	HasPending bool                     `json:"has_pending_addon"`
}

// GetBoard -> tampilan satu tanggal: kartu aktif, daftar nonaktif,
// dan counter walk-in. Customer nonaktif tetap tampil di daftar aktif
// kalau dia punya record di tanggal itu (tampilan historis).
func (bc *BoardController) GetBoard(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.Today()
	}
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidDate)
		return
	}

	var customers []models.Customer
	if err := bc.DB.Order("route, name").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var dayRecords []models.AttendanceRecord
	if err := bc.DB.Where("date = ? AND cust_id <> ?", date, models.WalkInCustID).
		Find(&dayRecords).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	recordsByCust := make(map[uint]models.AttendanceRecord, len(dayRecords))
	for _, r := range dayRecords {
		recordsByCust[r.CustID] = r
	}

	active := []BoardEntry{}
	inactive := []BoardEntry{}
	for i := range customers {
		cust := customers[i]
		rec, hasRecord := recordsByCust[cust.ID]

		entry := BoardEntry{
			Customer:   cust,
			HasPending: cust.PendingAddonDate != nil && *cust.PendingAddonDate == date,
		}
		if hasRecord {
			entry.Entry = &rec
		}

		if cust.Status != "inactive" || hasRecord {
			active = append(active, entry)
		} else {
			inactive = append(inactive, entry)
		}
	}

	salads, addons, err := bc.Svc.WalkInCounters(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Day board", gin.H{
		"date":     date,
		"today":    utils.Today(),
		"active":   active,
		"inactive": inactive,
		"walk_in": gin.H{
			"salads": salads,
			"addons": addons,
		},
	})
}
