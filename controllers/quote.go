// controllers/quote.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubmitQuoteInput struct {
	FirstName     string   `json:"firstName" binding:"required"`
	LastName      string   `json:"lastName" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Phone         string   `json:"phone" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state" binding:"required"`
	ZipCode       string   `json:"zipCode" binding:"required"`
	LotSize       int      `json:"lotSize" binding:"omitempty,min=0"`
	ServiceType   string   `json:"serviceType" binding:"required"`
	Description   string   `json:"description"`
	PreferredDate *string  `json:"preferredDate"`
	Photos        []string `json:"photos"`
}

type RespondQuoteInput struct {
	Status         string   `json:"status" binding:"required,oneof=reviewed quoted declined"`
	EstimatedPrice *float64 `json:"estimatedPrice" binding:"omitempty,min=0"`
	AdminNotes     string   `json:"adminNotes"`
}

// SubmitQuote is the public lead-capture endpoint. No auth required; if the
// caller happens to be logged in, the quote is linked to their account.
func SubmitQuote(c *gin.Context) {
	var input SubmitQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidateZipCode(input.ZipCode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid zip code format")
		return
	}

	quote := models.Quote{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
		LotSize:     input.LotSize,
		ServiceType: input.ServiceType,
		Description: input.Description,
		Photos:      input.Photos,
		Status:      models.QuotePending,
	}

	if input.PreferredDate != nil && *input.PreferredDate != "" {
		if !utils.ValidateISODate(*input.PreferredDate) {
			utils.RespondWithError(c, http.StatusBadRequest, "Preferred date must be in YYYY-MM-DD format")
			return
		}
		if t, err := time.Parse("2006-01-02", *input.PreferredDate); err == nil {
			quote.PreferredDate = &t
		}
	}

	if raw, exists := c.Get("userId"); exists {
		if id, err := uuid.Parse(raw.(string)); err == nil {
			quote.UserID = &id
		}
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to submit quote request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Quote request submitted successfully. We will get back to you within 24 hours.",
		"data":    quote,
	})
}

// GetQuotes lists quote requests for the admin dashboard.
func GetQuotes(c *gin.Context) {
	limit, offset := listParams(c)

	query := config.DB.Model(&models.Quote{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch quotes")
		return
	}

	var quotes []models.Quote
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&quotes).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    quotes,
	})
}

// GetQuote returns one quote request. Admin only.
func GetQuote(c *gin.Context) {
	quoteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
}

// RespondToQuote moves a quote through review. Setting status to quoted
// requires a price and starts the 30-day validity window.
func RespondToQuote(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	quoteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input RespondQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if quote.Status == models.QuoteAccepted || quote.Status == models.QuoteDeclined {
		utils.RespondWithError(c, http.StatusBadRequest, "Quote has already been "+quote.Status)
		return
	}

	quote.Status = input.Status
	quote.AdminNotes = input.AdminNotes
	quote.RespondedByID = &adminID

	if input.Status == models.QuoteQuoted {
		if input.EstimatedPrice == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Estimated price is required when quoting")
			return
		}
		price := decimal.NewFromFloat(*input.EstimatedPrice).Round(2)
		quote.EstimatedPrice = &price

		now := utils.Now()
		expires := now.AddDate(0, 0, 30)
		quote.QuotedAt = &now
		quote.ExpiresAt = &expires
	}

	if err := config.DB.Save(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quote updated successfully",
		"data":    quote,
	})
}

// AcceptQuote lets the requester accept an open quote before it expires.
// A quote linked to an account can only be accepted by that account;
// anonymous quotes stay open to any signed-in caller.
func AcceptQuote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quoteID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if quote.UserID != nil && *quote.UserID != userID && !utils.IsAdmin(c) {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized to accept this quote")
		return
	}

	if quote.Status != models.QuoteQuoted {
		utils.RespondWithError(c, http.StatusBadRequest, "Quote is not open for acceptance")
		return
	}
	if quote.ExpiresAt != nil && quote.ExpiresAt.Before(utils.Now()) {
		config.DB.Model(&quote).Update("status", models.QuoteExpired)
		utils.RespondWithError(c, http.StatusBadRequest, "Quote has expired. Please request a new one.")
		return
	}

	quote.Status = models.QuoteAccepted
	if err := config.DB.Save(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to accept quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quote accepted successfully",
		"data":    quote,
	})
}
