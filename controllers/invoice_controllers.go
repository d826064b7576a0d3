package controllers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/services"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type InvoiceController struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceController(db *gorm.DB, svc *services.InvoiceService) *InvoiceController {
	return &InvoiceController{DB: db, Svc: svc}
}

// GetInvoice -> kutipan bulan berjalan satu customer (angka saja).
// Dengan ?start= dan ?end= jadi agregasi periode bebas [start, end).
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	custID, _ := strconv.Atoi(c.Param("customer_id"))

	start := c.Query("start")
	end := c.Query("end")

	var (
		inv *services.Invoice
		err error
	)
	if start != "" && end != "" {
		inv, err = ic.Svc.ComputeInvoice(uint(custID), start, end, false)
	} else {
		inv, err = ic.Svc.GenerateInvoice(uint(custID), utils.Today())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoice", inv)
}

// GenerateAll -> PDF tagihan bulan penuh untuk semua customer aktif
func (ic *InvoiceController) GenerateAll(c *gin.Context) {
	outputDir := os.Getenv("INVOICE_DIR")
	if outputDir == "" {
		outputDir = "invoices"
	}

	files, err := ic.Svc.GenerateAllInvoices(utils.Today(), outputDir)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoices generated", gin.H{
		"count": len(files),
		"files": files,
	})
}
