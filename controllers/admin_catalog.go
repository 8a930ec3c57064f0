// controllers/admin_catalog.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServicePackageInput struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description" binding:"required"`
	BasePrice    float64             `json:"basePrice" binding:"required,min=0"`
	Features     []string            `json:"features"`
	PricingTiers models.PricingTiers `json:"pricingTiers"`
	IsActive     *bool               `json:"isActive"`
	SortOrder    int                 `json:"sortOrder"`
}

type ServicePackageUpdateInput struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	BasePrice    *float64             `json:"basePrice" binding:"omitempty,min=0"`
	Features     []string             `json:"features"`
	PricingTiers *models.PricingTiers `json:"pricingTiers"`
	IsActive     *bool                `json:"isActive"`
	SortOrder    *int                 `json:"sortOrder"`
}

type AddOnServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Category    string  `json:"category" binding:"omitempty,oneof=addon seasonal one-time"`
	IsActive    *bool   `json:"isActive"`
	Icon        string  `json:"icon"`
	SortOrder   int     `json:"sortOrder"`
}

type AddOnServiceUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Category    *string  `json:"category" binding:"omitempty,oneof=addon seasonal one-time"`
	IsActive    *bool    `json:"isActive"`
	Icon        *string  `json:"icon"`
	SortOrder   *int     `json:"sortOrder"`
}

type CrewMemberInput struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Role      string  `json:"role"`
	IsActive  *bool   `json:"isActive"`
	HireDate  *string `json:"hireDate"`
	PhotoURL  string  `json:"photoUrl"`
}

// CreateServicePackage adds a package to the catalog. Admin only.
func CreateServicePackage(c *gin.Context) {
	var input ServicePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pkg := models.ServicePackage{
		Name:         input.Name,
		Description:  input.Description,
		BasePrice:    decimal.NewFromFloat(input.BasePrice).Round(2),
		Features:     input.Features,
		PricingTiers: input.PricingTiers,
		IsActive:     true,
		SortOrder:    input.SortOrder,
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service package")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Service package created successfully",
		"data":    pkg,
	})
}

// UpdateServicePackage edits catalog fields. Price changes never touch
// existing bookings; those keep their snapshot totals.
func UpdateServicePackage(c *gin.Context) {
	packageID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input ServicePackageUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pkg models.ServicePackage
	if err := config.DB.First(&pkg, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.BasePrice != nil {
		pkg.BasePrice = decimal.NewFromFloat(*input.BasePrice).Round(2)
	}
	if input.Features != nil {
		pkg.Features = input.Features
	}
	if input.PricingTiers != nil {
		pkg.PricingTiers = *input.PricingTiers
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		pkg.SortOrder = *input.SortOrder
	}

	if err := config.DB.Save(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service package")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service package updated successfully",
		"data":    pkg,
	})
}

// DeleteServicePackage deactivates rather than destroys when bookings
// reference the package.
func DeleteServicePackage(c *gin.Context) {
	packageID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var bookingCount int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("service_package_id = ?", packageID).
		Count(&bookingCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if bookingCount > 0 {
		result := config.DB.Model(&models.ServicePackage{}).
			Where("id = ?", packageID).
			Update("is_active", false)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate service package")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Service package not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Service package has existing bookings and was deactivated instead of deleted",
		})
		return
	}

	result := config.DB.Delete(&models.ServicePackage{}, "id = ?", packageID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service package")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service package not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service package deleted successfully"})
}

// CreateAddOnService adds an add-on to the catalog. Admin only.
func CreateAddOnService(c *gin.Context) {
	var input AddOnServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price).Round(2),
		Category:    input.Category,
		IsActive:    true,
		Icon:        input.Icon,
		SortOrder:   input.SortOrder,
	}
	if service.Category == "" {
		service.Category = "addon"
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Service created successfully",
		"data":    service,
	})
}

// UpdateAddOnService edits an add-on. Existing appointment snapshots are
// unaffected.
func UpdateAddOnService(c *gin.Context) {
	serviceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AddOnServiceUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = decimal.NewFromFloat(*input.Price).Round(2)
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}
	if input.Icon != nil {
		service.Icon = *input.Icon
	}
	if input.SortOrder != nil {
		service.SortOrder = *input.SortOrder
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service updated successfully",
		"data":    service,
	})
}

// DeleteAddOnService deactivates the add-on so history keeps resolving.
func DeleteAddOnService(c *gin.Context) {
	serviceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deactivated successfully"})
}

// GetCrewMembers lists the crew roster.
func GetCrewMembers(c *gin.Context) {
	query := config.DB.Model(&models.CrewMember{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var crew []models.CrewMember
	if err := query.Order("first_name ASC").Find(&crew).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch crew members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(crew),
		"data":    crew,
	})
}

// CreateCrewMember adds a technician to the roster. Admin only.
func CreateCrewMember(c *gin.Context) {
	var input CrewMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	member := models.CrewMember{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
		Role:      input.Role,
		IsActive:  true,
		PhotoURL:  input.PhotoURL,
	}
	if member.Role == "" {
		member.Role = "technician"
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if input.HireDate != nil && *input.HireDate != "" {
		if t, err := time.Parse("2006-01-02", *input.HireDate); err == nil {
			member.HireDate = &t
		}
	}

	if err := config.DB.Create(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew member")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Crew member created successfully",
		"data":    member,
	})
}

// UpdateCrewMember edits roster details. Admin only.
func UpdateCrewMember(c *gin.Context) {
	memberID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CrewMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var member models.CrewMember
	if err := config.DB.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Crew member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	member.FirstName = input.FirstName
	member.LastName = input.LastName
	member.Phone = input.Phone
	member.Email = input.Email
	if input.Role != "" {
		member.Role = input.Role
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if input.HireDate != nil && *input.HireDate != "" {
		if t, err := time.Parse("2006-01-02", *input.HireDate); err == nil {
			member.HireDate = &t
		}
	}
	if input.PhotoURL != "" {
		member.PhotoURL = input.PhotoURL
	}

	if err := config.DB.Save(&member).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Crew member updated successfully",
		"data":    member,
	})
}

// DeleteCrewMember deactivates a crew member and unassigns their upcoming
// work in one transaction.
func DeleteCrewMember(c *gin.Context) {
	memberID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CrewMember{}).
			Where("id = ?", memberID).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Appointment{}).
			Where("crew_member_id = ? AND status = ?", memberID, models.StatusScheduled).
			Update("crew_member_id", nil).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Crew member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Crew member deactivated successfully"})
}
