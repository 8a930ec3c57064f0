// controllers/payment.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/services"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var centsPerDollar = decimal.NewFromInt(100)

type CreatePaymentIntentInput struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
}

type ConfirmPaymentInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// CreatePaymentIntent opens a payment for an appointment. The duplicate
// guard lives in models.CreatePayment so two concurrent requests cannot both
// insert a pending payment.
func CreatePaymentIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreatePaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	err := config.DB.Preload("ServicePackage").
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

	if appointment.Status == models.StatusCancelled {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot pay for a cancelled appointment")
		return
	}

	amountCents := appointment.TotalPrice.Mul(centsPerDollar).IntPart()
	intent, err := services.Gateway.CreateIntent(amountCents, "usd", map[string]string{
		"appointmentId": appointment.ID.String(),
		"userId":        userID.String(),
	}, "Lawn care service: "+appointment.ServicePackage.Name)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Payment provider error")
		return
	}

	payment := models.Payment{
		UserID:                userID,
		AppointmentID:         &appointment.ID,
		Amount:                appointment.TotalPrice,
		Status:                models.PaymentPending,
		PaymentMethod:         "card",
		StripePaymentIntentID: intent.ID,
	}
	if err := models.CreatePayment(config.DB, &payment); err != nil {
		if errors.Is(err, models.ErrDuplicatePayment) {
			utils.RespondWithError(c, http.StatusConflict, "A payment for this appointment already exists")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"clientSecret": intent.ClientSecret,
		"paymentId":    payment.ID,
	})
}

// ConfirmPayment reconciles a payment with the gateway: succeeded finalizes
// it and stamps an invoice number, processing stays pending, anything else
// marks it failed.
func ConfirmPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var payment models.Payment
	err := config.DB.
		Where("stripe_payment_intent_id = ? AND user_id = ?", input.PaymentIntentID, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	intent, err := services.Gateway.RetrieveIntent(input.PaymentIntentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Payment provider error")
		return
	}

	switch intent.Status {
	case "succeeded":
		now := utils.Now()
		payment.Status = models.PaymentCompleted
		payment.PaidAt = &now
		payment.StripeChargeID = intent.ChargeID
		payment.Last4 = intent.Last4
		payment.CardBrand = intent.CardBrand
		invoiceNumber := fmt.Sprintf("INV-%s-%s",
			now.Format("20060102"), utils.GenerateRandomString(8))
		payment.InvoiceNumber = &invoiceNumber
	case "processing":
		// keep pending until the gateway settles
	default:
		payment.Status = models.PaymentFailed
	}

	if err := config.DB.Save(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment " + payment.Status,
		"data":    payment,
	})
}

// GetPayments lists the requester's payments. Admins see every customer's.
func GetPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := listParams(c)

	query := config.DB.Model(&models.Payment{})
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	var payments []models.Payment
	err := query.
		Preload("Appointment").
		Preload("Appointment.ServicePackage").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    payments,
	})
}

// GetPayment retrieves a single payment.
func GetPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	query := config.DB.Where("id = ?", paymentID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var payment models.Payment
	err := query.
		Preload("Appointment").
		Preload("Appointment.Property").
		Preload("Appointment.ServicePackage").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
}

// DownloadInvoice streams the PDF invoice for a completed payment.
func DownloadInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	query := config.DB.Where("id = ?", paymentID)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var payment models.Payment
	err := query.
		Preload("User").
		Preload("Appointment").
		Preload("Appointment.Property").
		Preload("Appointment.ServicePackage").
		Preload("Appointment.Services.Service").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if payment.Status != models.PaymentCompleted {
		utils.RespondWithError(c, http.StatusBadRequest, "Invoice is only available for completed payments")
		return
	}
	if payment.Appointment == nil || payment.User == nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	pdf, err := services.GenerateInvoicePDF(&payment, payment.Appointment, payment.User, payment.Appointment.Property)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	filename := "invoice"
	if payment.InvoiceNumber != nil {
		filename = *payment.InvoiceNumber
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
