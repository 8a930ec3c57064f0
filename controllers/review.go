// controllers/review.go
package controllers

import (
	"errors"
	"net/http"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	AppointmentID uuid.UUID `json:"appointmentId" binding:"required"`
	Rating        int       `json:"rating" binding:"required,min=1,max=5"`
	Comment       string    `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// GetReviews is the public listing. Only approved reviews are visible;
// featured=true narrows to the reviews pinned by an admin.
func GetReviews(c *gin.Context) {
	limit, offset := listParams(c)

	query := config.DB.Model(&models.Review{}).Where("is_approved = ?", true)
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	var reviews []models.Review
	err := query.
		Preload("User").
		Preload("Appointment.ServicePackage").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    reviews,
	})
}

// GetReview returns one approved review.
func GetReview(c *gin.Context) {
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var review models.Review
	err := config.DB.
		Preload("User").
		Preload("Appointment.ServicePackage").
		Where("id = ? AND is_approved = ?", reviewID, true).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": review})
}

// CreateReview lets a customer review one of their own completed
// appointments, once per appointment.
func CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	err := config.DB.
		Where("id = ? AND user_id = ?", input.AppointmentID, userID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status != models.StatusCompleted {
		utils.RespondWithError(c, http.StatusBadRequest, "You can only review completed appointments")
		return
	}

	var existing int64
	if err := config.DB.Model(&models.Review{}).
		Where("appointment_id = ?", input.AppointmentID).
		Count(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if existing > 0 {
		utils.RespondWithError(c, http.StatusConflict, "You have already reviewed this appointment")
		return
	}

	review := models.Review{
		UserID:        userID,
		AppointmentID: &input.AppointmentID,
		Rating:        input.Rating,
		Comment:       input.Comment,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Review submitted successfully. It will appear once approved.",
		"data":    review,
	})
}

// UpdateReview edits the customer's own review. Edits reset approval so an
// admin re-screens the new text.
func UpdateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var review models.Review
	err := config.DB.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	review.IsApproved = false
	review.ApprovedAt = nil
	review.ApprovedBy = nil

	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review updated successfully",
		"data":    review,
	})
}

// DeleteReview removes the customer's own review. Admins may remove any.
func DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	query := config.DB.Where("id = ?", reviewID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Delete(&models.Review{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted successfully"})
}

// GetPendingReviews lists reviews awaiting moderation. Admin only.
func GetPendingReviews(c *gin.Context) {
	limit, offset := listParams(c)

	var reviews []models.Review
	err := config.DB.
		Preload("User").
		Preload("Appointment.ServicePackage").
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}

// ApproveReview publishes a review. Admin only.
func ApproveReview(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	now := utils.Now()
	review.IsApproved = true
	review.ApprovedAt = &now
	review.ApprovedBy = &adminID

	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to approve review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review approved successfully",
		"data":    review,
	})
}

// FeatureReview toggles whether an approved review is pinned on the public
// listing. Admin only.
func FeatureReview(c *gin.Context) {
	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !review.IsApproved {
		utils.RespondWithError(c, http.StatusBadRequest, "Only approved reviews can be featured")
		return
	}

	review.IsFeatured = !review.IsFeatured
	if err := config.DB.Save(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review updated successfully",
		"data":    review,
	})
}
