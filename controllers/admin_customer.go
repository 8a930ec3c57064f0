// controllers/admin_customer.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminCreateCustomerInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type AdminUpdateCustomerInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"isActive"`
}

// GetCustomers lists customer accounts with optional name/email search.
func GetCustomers(c *gin.Context) {
	limit, offset := listParams(c)

	query := config.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	var customers []models.User
	err := query.
		Preload("Properties").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&customers).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    customers,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// GetCustomer returns one customer with properties and recent bookings.
func GetCustomer(c *gin.Context) {
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var customer models.User
	err := config.DB.
		Preload("Properties").
		Where("id = ? AND role = ?", customerID, models.RoleCustomer).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var recentBookings []models.Appointment
	config.DB.
		Preload("ServicePackage").
		Where("user_id = ?", customerID).
		Order("scheduled_date DESC").
		Limit(10).
		Find(&recentBookings)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customer":       customer,
			"recentBookings": recentBookings,
		},
	})
}

// CreateCustomer registers an account on a customer's behalf. Admin only.
func CreateCustomer(c *gin.Context) {
	var input AdminCreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	}

	customer := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Phone:     input.Phone,
		Password:  input.Password,
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Customer created successfully",
		"data":    customer,
	})
}

// UpdateCustomer edits account details. Admin only.
func UpdateCustomer(c *gin.Context) {
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AdminUpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.User
	err := config.DB.
		Where("id = ? AND role = ?", customerID, models.RoleCustomer).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// ArchiveCustomer deactivates the account and cancels its scheduled work in
// one transaction. The record is kept for payment history.
func ArchiveCustomer(c *gin.Context) {
	customerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND role = ?", customerID, models.RoleCustomer).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		now := utils.Now()
		return tx.Model(&models.Appointment{}).
			Where("user_id = ? AND status IN ?", customerID,
				[]string{models.StatusScheduled, models.StatusPaused}).
			Updates(map[string]interface{}{
				"status":              models.StatusCancelled,
				"cancelled_at":        now,
				"cancellation_reason": "Account archived",
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to archive customer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer archived successfully"})
}
