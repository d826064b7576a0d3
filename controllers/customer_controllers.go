package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grabbagreen/salad-ledger/models"
	"github.com/grabbagreen/salad-ledger/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> semua subscriber, opsional filter ?status=active
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	query := cc.DB.Order("route, name")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// CreateCustomer -> subscriber baru, langsung aktif
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	type reqBody struct {
		Name     string `json:"name" binding:"required"`
		Nickname string `json:"nickname" binding:"required"`
		Route    string `json:"route" binding:"required"`
		Plan     string `json:"plan" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidPlan(req.Plan) {
		utils.RespondError(c, http.StatusBadRequest, ErrUnknownPlan)
		return
	}

	customer := models.Customer{
		Name:     req.Name,
		Nickname: req.Nickname,
		Route:    strings.ToUpper(req.Route),
		Plan:     req.Plan,
		Status:   "active",
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New subscriber created (ID=%d) on route %s", customer.ID, customer.Route)

	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// GetCustomerByID -> detail 1 customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// UpdateCustomer -> edit profil (nama, route, plan) atau flip status
// active/inactive. Customer tidak pernah dihapus dari ledger, cukup
// dinonaktifkan.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name     *string `json:"name"`
		Nickname *string `json:"nickname"`
		Route    *string `json:"route"`
		Plan     *string `json:"plan"`
		Status   *string `json:"status"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Nickname != nil {
		customer.Nickname = *req.Nickname
	}
	if req.Route != nil {
		customer.Route = strings.ToUpper(*req.Route)
	}
	if req.Plan != nil {
		if !models.IsValidPlan(*req.Plan) {
			utils.RespondError(c, http.StatusBadRequest, ErrUnknownPlan)
			return
		}
		customer.Plan = *req.Plan
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("status must be 'active' or 'inactive'"))
			return
		}
		customer.Status = *req.Status
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

var ErrUnknownPlan = &CustomError{"plan must be Regular, Premium, or MealBox"}
