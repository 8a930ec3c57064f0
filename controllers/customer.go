// controllers/customer.go
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

type UpdateProfileInput struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	ProfilePhoto *string `json:"profilePhoto"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// GetProfile returns the authenticated customer's account.
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// UpdateProfile updates contact details. Email and role are immutable here.
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = *input.ProfilePhoto
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    user,
	})
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	if err := config.DB.Model(&user).Update("password", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// PauseService pauses all of the customer's scheduled appointments. Runs as
// a conditional bulk update so already-paused rows are untouched and a
// repeat call is a no-op.
func PauseService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ?", userID, models.StatusScheduled).
		Update("status", models.StatusPaused)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to pause service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Service paused successfully",
		"pausedCount": result.RowsAffected,
	})
}

// ResumeService flips the customer's paused appointments back to scheduled.
func ResumeService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ?", userID, models.StatusPaused).
		Update("status", models.StatusScheduled)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resume service")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Service resumed successfully",
		"resumedCount": result.RowsAffected,
	})
}

// GetUpcomingAppointments lists the customer's next scheduled visits.
func GetUpcomingAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	err := config.DB.
		Preload("Property").
		Preload("ServicePackage").
		Where("user_id = ? AND status = ? AND scheduled_date >= ?",
			userID, models.StatusScheduled, utils.BeginningOfDay(utils.Now())).
		Order("scheduled_date ASC").
		Limit(10).
		Find(&appointments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(appointments),
		"data":    appointments,
	})
}

// GetServiceHistory lists the customer's completed visits, newest first.
func GetServiceHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := listParams(c)

	query := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	var appointments []models.Appointment
	err := query.
		Preload("Property").
		Preload("ServicePackage").
		Preload("Services.Service").
		Order("completed_at DESC").
		Limit(limit).Offset(offset).
		Find(&appointments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    appointments,
	})
}

// DeleteAccount soft deletes the account after verifying there are no
// upcoming appointments.
func DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var upcoming int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.StatusScheduled, models.StatusInProgress, models.StatusPaused}).
		Count(&upcoming).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if upcoming > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete account with upcoming appointments. Please cancel them first.")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		}
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}
