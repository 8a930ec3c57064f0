// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/pricing"
	"lawncare-backend/services"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	PropertyID          uuid.UUID   `json:"propertyId" binding:"required"`
	ServicePackageID    uuid.UUID   `json:"servicePackageId" binding:"required"`
	ScheduledDate       time.Time   `json:"scheduledDate" binding:"required"`
	ScheduledTime       string      `json:"scheduledTime"`
	Frequency           string      `json:"frequency" binding:"omitempty,oneof=one-time weekly bi-weekly monthly"`
	AddOnServiceIDs     []uuid.UUID `json:"addOnServiceIds"`
	SpecialInstructions string      `json:"specialInstructions"`
}

type UpdateBookingInput struct {
	ScheduledDate       *time.Time  `json:"scheduledDate"`
	ScheduledTime       *string     `json:"scheduledTime"`
	SpecialInstructions *string     `json:"specialInstructions"`
	CrewMemberID        *uuid.UUID  `json:"crewMemberId"`
	Status              *string     `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled rescheduled paused"`
}

type CancelBookingInput struct {
	CancellationReason string `json:"cancellationReason"`
}

type RescheduleInput struct {
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	ScheduledTime string    `json:"scheduledTime" binding:"required"`
}

type CompleteInput struct {
	CompletionNotes  string `json:"completionNotes"`
	ActualDuration   int    `json:"actualDuration" binding:"omitempty,min=0"`
	WeatherCondition string `json:"weatherCondition"`
}

type AddBookingServicesInput struct {
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
}

// CreateBooking books an appointment: verifies property ownership and the
// package, prices the booking and snapshots add-on prices, all in one
// transaction.
func CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Verify property belongs to user
	var property models.Property
	if err := config.DB.Where("id = ? AND user_id = ?", input.PropertyID, userID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found or does not belong to you")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	breakdown, _, err := priceForPackage(input.ServicePackageID, property.LotSize, input.AddOnServiceIDs)
	if err != nil {
		respondPricingError(c, err)
		return
	}

	scheduledTime := input.ScheduledTime
	if scheduledTime == "" {
		scheduledTime = "09:00 AM"
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = models.FrequencyOneTime
	}

	appointment := models.Appointment{
		UserID:              userID,
		PropertyID:          input.PropertyID,
		ServicePackageID:    input.ServicePackageID,
		ScheduledDate:       input.ScheduledDate,
		ScheduledTime:       scheduledTime,
		Frequency:           frequency,
		TotalPrice:          breakdown.TotalPrice,
		SpecialInstructions: input.SpecialInstructions,
		Status:              models.StatusScheduled,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		for _, addOn := range breakdown.AddOns {
			item := models.AppointmentService{
				AppointmentID: appointment.ID,
				ServiceID:     addOn.ID,
				Price:         addOn.Price,
				Quantity:      addOn.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	complete, err := loadBooking(appointment.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	// Confirmation is best-effort; never fails the booking
	services.Notifier.SendBookingConfirmation(complete, complete.User, complete.Property, complete.ServicePackage)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Booking created successfully",
		"data":     complete,
		"warnings": breakdown.Warnings,
	})
}

func loadBooking(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := config.DB.
		Preload("Property").
		Preload("ServicePackage").
		Preload("User").
		Preload("CrewMember").
		Preload("Services.Service").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// findOwnedBooking fetches a booking scoped to the requester unless the
// requester is an admin.
func findOwnedBooking(c *gin.Context, id, userID uuid.UUID) (*models.Appointment, bool) {
	query := config.DB.Where("id = ?", id)
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}

	var appointment models.Appointment
	if err := query.First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &appointment, true
}

// GetBookings lists bookings with status/date filters. Admins see all
// customers' bookings.
func GetBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := listParams(c)

	query := config.DB.Model(&models.Appointment{})
	if !utils.IsAdmin(c) {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			query = query.Where("scheduled_date >= ?", t)
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			query = query.Where("scheduled_date <= ?", t)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	var bookings []models.Appointment
	if err := query.
		Preload("Property").
		Preload("ServicePackage").
		Preload("User").
		Preload("CrewMember").
		Order("scheduled_date DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   total,
		"data":    bookings,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// GetBooking retrieves a single booking with its relations.
func GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, ok := findOwnedBooking(c, bookingID, userID); !ok {
		return
	}

	booking, err := loadBooking(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
}

// UpdateBooking mutates schedule fields and notes. Direct status writes and
// crew assignment are admin-only.
func UpdateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, ok := findOwnedBooking(c, bookingID, userID)
	if !ok {
		return
	}

	if booking.IsTerminal() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot update "+booking.Status+" booking")
		return
	}

	if input.ScheduledDate != nil {
		booking.ScheduledDate = *input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		booking.ScheduledTime = *input.ScheduledTime
	}
	if input.SpecialInstructions != nil {
		booking.SpecialInstructions = *input.SpecialInstructions
	}
	if input.CrewMemberID != nil && utils.IsAdmin(c) {
		booking.CrewMemberID = input.CrewMemberID
	}
	if input.Status != nil && utils.IsAdmin(c) {
		booking.Status = *input.Status
	}

	if err := config.DB.Save(booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	updated, err := loadBooking(booking.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"data":    updated,
	})
}

// CancelBooking transitions a non-terminal booking to cancelled.
func CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CancelBookingInput
	c.ShouldBindJSON(&input) // body is optional

	booking, ok := findOwnedBooking(c, bookingID, userID)
	if !ok {
		return
	}

	if err := booking.Cancel(input.CancellationReason, utils.Now()); err != nil {
		respondLifecycleError(c, err, booking.Status)
		return
	}

	if err := config.DB.Save(booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"data":    booking,
	})
}

// RescheduleAppointment moves a non-terminal appointment to a new date/time.
// Customers may move only their own bookings.
func RescheduleAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Scheduled date and time are required")
		return
	}

	booking, ok := findOwnedBooking(c, bookingID, userID)
	if !ok {
		return
	}

	if err := booking.Reschedule(input.ScheduledDate, input.ScheduledTime); err != nil {
		respondLifecycleError(c, err, booking.Status)
		return
	}

	if err := config.DB.Save(booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reschedule appointment")
		return
	}

	updated, err := loadBooking(booking.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment rescheduled successfully",
		"data":    updated,
	})
}

// CompleteAppointment marks an appointment done with completion metadata.
// Admin only; the whole transition commits as one update.
func CompleteAppointment(c *gin.Context) {
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CompleteInput
	c.ShouldBindJSON(&input) // all fields optional

	var booking models.Appointment
	if err := config.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := booking.Complete(input.CompletionNotes, input.ActualDuration, input.WeatherCondition, utils.Now()); err != nil {
		respondLifecycleError(c, err, booking.Status)
		return
	}

	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete appointment")
		return
	}

	updated, err := loadBooking(booking.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment completed successfully",
		"data":    updated,
	})
}

// AddBookingServices attaches add-ons to an existing booking. Prices are
// snapshotted at attach time and the stored total grows additively; earlier
// snapshots are never repriced.
func AddBookingServices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input AddBookingServicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, ok := findOwnedBooking(c, bookingID, userID)
	if !ok {
		return
	}

	if !booking.CanModifyServices() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot modify services of "+booking.Status+" booking")
		return
	}

	var active []models.Service
	if err := config.DB.Where("id IN ? AND is_active = ?", input.ServiceIDs, true).
		Find(&active).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	addOns, warnings := pricing.ResolveAddOns(input.ServiceIDs, active)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		total := booking.TotalPrice
		for _, addOn := range addOns {
			item := models.AppointmentService{
				AppointmentID: booking.ID,
				ServiceID:     addOn.ID,
				Price:         addOn.Price,
				Quantity:      addOn.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total = total.Add(item.Subtotal())
		}
		booking.TotalPrice = total.Round(2)
		return tx.Model(booking).Update("total_price", booking.TotalPrice).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add services")
		return
	}

	updated, err := loadBooking(booking.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Services added successfully",
		"data":     updated,
		"warnings": warnings,
	})
}

func respondLifecycleError(c *gin.Context, err error, status string) {
	switch {
	case errors.Is(err, models.ErrAlreadyCompleted):
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment is already completed")
	case errors.Is(err, models.ErrAlreadyCancelled):
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment is already cancelled")
	case errors.Is(err, models.ErrCannotCancelCompleted):
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot cancel completed booking")
	case errors.Is(err, models.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot reschedule "+status+" appointment")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
	}
}
