// controllers/property.go
package controllers

import (
	"errors"
	"net/http"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePropertyInput struct {
	Address             string `json:"address" binding:"required"`
	City                string `json:"city" binding:"required"`
	State               string `json:"state" binding:"required"`
	ZipCode             string `json:"zipCode" binding:"required"`
	LotSize             int    `json:"lotSize" binding:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions"`
	GateCode            string `json:"gateCode"`
	HasBackyard         *bool  `json:"hasBackyard"`
	HasDogs             *bool  `json:"hasDogs"`
	IsPrimary           *bool  `json:"isPrimary"`
}

type UpdatePropertyInput struct {
	Address             *string `json:"address"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zipCode"`
	LotSize             *int    `json:"lotSize"`
	SpecialInstructions *string `json:"specialInstructions"`
	GateCode            *string `json:"gateCode"`
	HasBackyard         *bool   `json:"hasBackyard"`
	HasDogs             *bool   `json:"hasDogs"`
	IsPrimary           *bool   `json:"isPrimary"`
}

// CreateProperty registers a property for the authenticated customer.
func CreateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateZipCode(input.ZipCode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid zip code. Use 5-digit US zip code")
		return
	}

	property := models.Property{
		UserID:              userID,
		Address:             input.Address,
		City:                input.City,
		State:               input.State,
		ZipCode:             input.ZipCode,
		LotSize:             input.LotSize,
		SpecialInstructions: input.SpecialInstructions,
		GateCode:            input.GateCode,
		IsPrimary:           true,
	}
	if input.HasBackyard != nil {
		property.HasBackyard = *input.HasBackyard
	}
	if input.HasDogs != nil {
		property.HasDogs = *input.HasDogs
	}
	if input.IsPrimary != nil {
		property.IsPrimary = *input.IsPrimary
	}

	// Insert and (when primary) demote the owner's other properties as one
	// atomic unit so exactly one primary survives.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if property.IsPrimary {
			if err := tx.Model(&models.Property{}).
				Where("user_id = ?", userID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&property).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Property created successfully",
		"data":    property,
	})
}

// GetProperties lists the authenticated customer's properties, primary first.
func GetProperties(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var properties []models.Property
	if err := config.DB.Where("user_id = ?", userID).
		Order("is_primary DESC, created_at DESC").
		Find(&properties).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(properties),
		"data":    properties,
	})
}

// GetProperty retrieves one property; admins can see any, customers only
// their own.
func GetProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	query := config.DB.Where("id = ?", propertyID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var property models.Property
	if err := query.First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": property})
}

// UpdateProperty mutates a property; flipping isPrimary demotes siblings in
// the same transaction.
func UpdateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	query := config.DB.Where("id = ?", propertyID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var property models.Property
	if err := query.First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.State != nil {
		property.State = *input.State
	}
	if input.ZipCode != nil {
		if !utils.ValidateZipCode(*input.ZipCode) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid zip code. Use 5-digit US zip code")
			return
		}
		property.ZipCode = *input.ZipCode
	}
	if input.LotSize != nil {
		if *input.LotSize <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Lot size must be a positive number")
			return
		}
		property.LotSize = *input.LotSize
	}
	if input.SpecialInstructions != nil {
		property.SpecialInstructions = *input.SpecialInstructions
	}
	if input.GateCode != nil {
		property.GateCode = *input.GateCode
	}
	if input.HasBackyard != nil {
		property.HasBackyard = *input.HasBackyard
	}
	if input.HasDogs != nil {
		property.HasDogs = *input.HasDogs
	}

	makePrimary := input.IsPrimary != nil && *input.IsPrimary && !property.IsPrimary
	if input.IsPrimary != nil {
		property.IsPrimary = *input.IsPrimary
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if makePrimary {
			if err := tx.Model(&models.Property{}).
				Where("user_id = ? AND id <> ?", property.UserID, property.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&property).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property updated successfully",
		"data":    property,
	})
}

// DeleteProperty soft deletes a property unless appointments reference it.
func DeleteProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	query := config.DB.Where("id = ?", propertyID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var property models.Property
	if err := query.First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var appointmentCount int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("property_id = ?", property.ID).
		Count(&appointmentCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if appointmentCount > 0 {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Cannot delete property with existing appointments. Please cancel appointments first.")
		return
	}

	if err := config.DB.Delete(&property).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property deleted successfully",
	})
}
