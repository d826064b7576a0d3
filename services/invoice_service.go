package services

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

// InvoiceService mengagregasi attendance satu customer menjadi tagihan.
// Read-only terhadap ledger.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// Invoice adalah hasil agregasi satu customer untuk satu periode.
type Invoice struct {
	CustomerID     uint   `json:"customer_id"`
	CustomerName   string `json:"customer_name"`
	Nickname       string `json:"nickname"`
	Route          string `json:"route"`
	Plan           string `json:"plan"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	DeliveredCount int    `json:"delivered_count"`
	AddonsCount    int    `json:"addons_count"`
	Total          int    `json:"total"`
}

// ComputeInvoice menghitung tagihan untuk date di [periodStart, periodEnd).
// excludeSunday membuang record hari Minggu dari kedua hitungan.
// total = round(delivered * hargaPlan/26 + addons * 100); pembulatan hanya
// di sini, per-bowl rate dibiarkan pecahan.
func (s *InvoiceService) ComputeInvoice(custID uint, periodStart, periodEnd string, excludeSunday bool) (*Invoice, error) {
	var customer models.Customer
	if err := s.DB.First(&customer, custID).Error; err != nil {
		return nil, err
	}

	var records []models.AttendanceRecord
	if err := s.DB.Where("cust_id = ? AND date >= ? AND date < ?", custID, periodStart, periodEnd).
		Find(&records).Error; err != nil {
		return nil, err
	}

	delivered := 0
	addons := 0
	for _, r := range records {
		if excludeSunday && utils.IsSunday(r.Date) {
			continue
		}
		if r.Status == models.StatusDelivered {
			delivered++
		}
		addons += r.Addons
	}

	total := int(math.Round(float64(delivered)*models.PerBowlPrice(customer.Plan) +
		float64(addons*models.AddonUnitPrice)))

	return &Invoice{
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		Nickname:       customer.Nickname,
		Route:          customer.Route,
		Plan:           customer.Plan,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		DeliveredCount: delivered,
		AddonsCount:    addons,
		Total:          total,
	}, nil
}

// GenerateInvoice: kutipan bulan berjalan untuk satu customer, hari Minggu
// ikut dihitung (angka cepat di layar, belum tagihan final).
func (s *InvoiceService) GenerateInvoice(custID uint, today string) (*Invoice, error) {
	return s.ComputeInvoice(custID, utils.MonthStart(today), utils.NextMonthStart(today), false)
}

// GenerateAllInvoices membuat satu PDF per customer aktif untuk bulan
// berjalan penuh. Hari Minggu tidak ditagih di tagihan final.
func (s *InvoiceService) GenerateAllInvoices(today, outputDir string) ([]string, error) {
	var customers []models.Customer
	if err := s.DB.Where("status = ?", "active").Find(&customers).Error; err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(customers))
	for _, cust := range customers {
		inv, err := s.ComputeInvoice(cust.ID, utils.MonthStart(today), utils.NextMonthStart(today), true)
		if err != nil {
			return files, err
		}

		path := filepath.Join(outputDir, fmt.Sprintf("Invoice_%s_%s.pdf", cust.Nickname, monthToken(today)))
		if err := writeInvoicePDF(path, inv, today); err != nil {
			return files, err
		}

		utils.InfoLogger.Printf("Invoice generated for %s: %s", cust.Nickname, path)
		files = append(files, path)
	}

	return files, nil
}

func monthToken(date string) string {
	t, _ := time.Parse(utils.DateLayout, date)
	return t.Format("January")
}

func writeInvoicePDF(path string, inv *Invoice, today string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(20, 20, "SALAD MASTER INVOICE")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 40, fmt.Sprintf("Customer: %s (%s)", inv.CustomerName, inv.Nickname))
	pdf.Text(20, 50, fmt.Sprintf("Route: %s", inv.Route))
	pdf.Text(20, 60, fmt.Sprintf("Month: %s", utils.MonthName(today)))

	pdf.Line(20, 65, 190, 65)

	pdf.Text(20, 80, fmt.Sprintf("Total Bowls Delivered: %d", inv.DeliveredCount))
	pdf.Text(20, 90, fmt.Sprintf("Extra Add-ons: %d", inv.AddonsCount))

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, 110, fmt.Sprintf("TOTAL PAYABLE: %s", utils.FormatRupees(inv.Total)))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 130, "Thank you for your subscription!")

	return pdf.OutputFileAndClose(path)
}
