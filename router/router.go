package router

import (
	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/controllers"
	"github.com/grabbagreen/salad-ledger/middlewares"
	"github.com/grabbagreen/salad-ledger/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Engine dibuat sekali: busy flag dan slot undo hidup di sini
	attendanceSvc := services.NewAttendanceService(db)
	invoiceSvc := services.NewInvoiceService(db)
	backupSvc := services.NewBackupService(db)

	authCtrl := controllers.NewAuthController(db)
	customerCtrl := controllers.NewCustomerController(db)
	attendanceCtrl := controllers.NewAttendanceController(db, attendanceSvc)
	walkInCtrl := controllers.NewWalkInController(db, attendanceSvc)
	boardCtrl := controllers.NewBoardController(db, attendanceSvc)
	invoiceCtrl := controllers.NewInvoiceController(db, invoiceSvc)
	backupCtrl := controllers.NewBackupController(db, backupSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	// Day board (tampilan utama per tanggal)
	auth.GET("/board", boardCtrl.GetBoard)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)

	// ATTENDANCE
	auth.GET("/attendance", attendanceCtrl.ListAttendance)
	auth.POST("/attendance", attendanceCtrl.RecordDailyStatus)
	auth.POST("/attendance/undo", attendanceCtrl.Undo)
	auth.POST("/customers/:customer_id/addon", attendanceCtrl.RequestAddon)
	auth.POST("/customers/:customer_id/vacation", attendanceCtrl.BookVacation)
	auth.POST("/customers/:customer_id/vacation/resume", attendanceCtrl.ResumeVacation)

	// WALK-IN
	auth.GET("/walkins", walkInCtrl.GetCounters)
	auth.POST("/walkins", walkInCtrl.AdjustCounter)

	// INVOICES
	auth.GET("/customers/:customer_id/invoice", invoiceCtrl.GetInvoice)

	// Admin saja: artefak tagihan & backup restore
	admin := auth.Group("/")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.POST("/invoices/generate", invoiceCtrl.GenerateAll)
		admin.GET("/backup/export", backupCtrl.Export)
		admin.POST("/backup/import", backupCtrl.Import)
	}

	return r
}
