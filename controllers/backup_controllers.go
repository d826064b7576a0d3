package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type BackupController struct {
	DB  *gorm.DB
	Svc *services.BackupService
}

func NewBackupController(db *gorm.DB, svc *services.BackupService) *BackupController {
	return &BackupController{DB: db, Svc: svc}
}

var ErrImportConfirm = &CustomError{"import overwrites all current data; set confirm_overwrite to proceed"}

// Export -> unduh seluruh ledger sebagai file backup JSON.
// Snapshot dikirim polos (tanpa amplop respons) supaya file bisa langsung
// dipakai ulang oleh Import.
func (bc *BackupController) Export(c *gin.Context) {
	snap, err := bc.Svc.ExportSnapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("GrabbAGreen_Backup_%s.json", utils.Today())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, snap)
}

// Import -> ganti seluruh isi ledger dengan snapshot.
// Payload rusak ditolak sebelum ada data lama yang disentuh.
func (bc *BackupController) Import(c *gin.Context) {
	type reqBody struct {
		ConfirmOverwrite bool            `json:"confirm_overwrite"`
		Snapshot         models.Snapshot `json:"snapshot"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !req.ConfirmOverwrite {
		utils.RespondError(c, http.StatusConflict, ErrImportConfirm)
		return
	}

	if err := bc.Svc.ImportSnapshot(&req.Snapshot); err != nil {
		if errors.Is(err, services.ErrBadSnapshot) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ledger restored from backup: %d customers, %d records",
		len(req.Snapshot.Customers), len(req.Snapshot.Attendance))

	utils.RespondJSON(c, http.StatusOK, "Data restored successfully", gin.H{
		"customers_restored":  len(req.Snapshot.Customers),
		"attendance_restored": len(req.Snapshot.Attendance),
	})
}
