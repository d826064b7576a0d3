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
	"github.com/grabbagreen/salad-ledger/utils"
)

func setupCustomerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	customerCtrl := controllers.NewCustomerController(db)
	router.GET("/customers", customerCtrl.GetAllCustomers)
	router.POST("/customers", customerCtrl.CreateCustomer)
	router.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	router.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	return router
}

func setupTestDBForCustomers() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		panic(err)
	}
	return db
}

func TestCreateAndGetCustomer(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers()
	router := setupCustomerRouter(db)

	w := postJSON(t, router, "/customers", map[string]interface{}{
		"name":     "Amit Kumar",
		"nickname": "Amit",
		"route":    "a",
		"plan":     "Premium",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	// Route dinormalisasi ke huruf besar
	assert.Equal(t, "A", data["route"])

	req, _ := http.NewRequest("GET", "/customers/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCustomerRejectsUnknownPlan(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers()
	router := setupCustomerRouter(db)

	w := postJSON(t, router, "/customers", map[string]interface{}{
		"name":     "Amit Kumar",
		"nickname": "Amit",
		"route":    "A",
		"plan":     "Jumbo",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCustomerStatusFlip(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers()
	router := setupCustomerRouter(db)

	db.Create(&models.Customer{
		Name: "Sneha Reddy", Nickname: "Sneha", Route: "B", Plan: "Regular", Status: "active",
	})

	body := []byte(`{"status":"inactive"}`)
	req, _ := http.NewRequest("PATCH", "/customers/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var cust models.Customer
	db.First(&cust, 1)
	assert.Equal(t, "inactive", cust.Status)
}

func TestListCustomersWithStatusFilter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCustomers()
	router := setupCustomerRouter(db)

	db.Create(&models.Customer{Name: "Amit Kumar", Nickname: "Amit", Route: "A", Plan: "Premium", Status: "active"})
	db.Create(&models.Customer{Name: "Sneha Reddy", Nickname: "Sneha", Route: "B", Plan: "Regular", Status: "inactive"})

	req, _ := http.NewRequest("GET", "/customers?status=active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
}
