// controllers/dashboard.go
package controllers

import (
	"net/http"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/pricing"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardStats returns the headline counters for the admin dashboard.
func GetDashboardStats(c *gin.Context) {
	var (
		totalCustomers  int64
		activeCustomers int64
		totalBookings   int64
		todayBookings   int64
		pendingQuotes   int64
		pendingReviews  int64
	)

	db := config.DB
	today := utils.BeginningOfDay(utils.Now())
	tomorrow := today.AddDate(0, 0, 1)

	db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&totalCustomers)
	db.Model(&models.User{}).Where("role = ? AND is_active = ?", models.RoleCustomer, true).Count(&activeCustomers)
	db.Model(&models.Appointment{}).Count(&totalBookings)
	db.Model(&models.Appointment{}).
		Where("scheduled_date >= ? AND scheduled_date < ?", today, tomorrow).
		Count(&todayBookings)
	db.Model(&models.Quote{}).Where("status = ?", models.QuotePending).Count(&pendingQuotes)
	db.Model(&models.Review{}).Where("is_approved = ?", false).Count(&pendingReviews)

	statusCounts := map[string]int64{}
	rows := []struct {
		Status string
		Count  int64
	}{}
	db.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows)
	for _, row := range rows {
		statusCounts[row.Status] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalCustomers":   totalCustomers,
			"activeCustomers":  activeCustomers,
			"totalBookings":    totalBookings,
			"todayBookings":    todayBookings,
			"pendingQuotes":    pendingQuotes,
			"pendingReviews":   pendingReviews,
			"bookingsByStatus": statusCounts,
		},
	})
}

// GetRevenueStats aggregates collected revenue plus the monthly recurring
// revenue projection from active recurring bookings.
func GetRevenueStats(c *gin.Context) {
	db := config.DB
	now := utils.Now()
	monthStart := utils.BeginningOfMonth(now)

	var payments []models.Payment
	if err := db.Where("status = ?", models.PaymentCompleted).Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch revenue")
		return
	}

	totalRevenue := decimal.Zero
	monthRevenue := decimal.Zero
	for _, p := range payments {
		totalRevenue = totalRevenue.Add(p.Amount)
		if p.PaidAt != nil && !p.PaidAt.Before(monthStart) {
			monthRevenue = monthRevenue.Add(p.Amount)
		}
	}

	var appointments []models.Appointment
	if err := db.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	mrr := pricing.MonthlyRecurringRevenue(appointments)

	var pendingPayments int64
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&pendingPayments)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalRevenue":            totalRevenue.Round(2),
			"monthRevenue":            monthRevenue.Round(2),
			"monthlyRecurringRevenue": mrr,
			"completedPayments":       len(payments),
			"pendingPayments":         pendingPayments,
		},
	})
}

// GetTodayAppointments lists the day's schedule for dispatch.
func GetTodayAppointments(c *gin.Context) {
	today := utils.BeginningOfDay(utils.Now())
	tomorrow := today.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := config.DB.
		Preload("User").
		Preload("Property").
		Preload("ServicePackage").
		Preload("CrewMember").
		Where("scheduled_date >= ? AND scheduled_date < ?", today, tomorrow).
		Where("status IN ?", []string{models.StatusScheduled, models.StatusInProgress}).
		Order("scheduled_time ASC").
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

// GetCustomerMetrics reports acquisition and churn style counters.
func GetCustomerMetrics(c *gin.Context) {
	db := config.DB
	now := utils.Now()
	monthStart := utils.BeginningOfMonth(now)

	var (
		newThisMonth    int64
		withRecurring   int64
		pausedCustomers int64
	)

	db.Model(&models.User{}).
		Where("role = ? AND created_at >= ?", models.RoleCustomer, monthStart).
		Count(&newThisMonth)
	db.Model(&models.Appointment{}).
		Where("frequency <> ? AND status IN ?", models.FrequencyOneTime,
			[]string{models.StatusScheduled, models.StatusInProgress}).
		Distinct("user_id").
		Count(&withRecurring)
	db.Model(&models.Appointment{}).
		Where("status = ?", models.StatusPaused).
		Distinct("user_id").
		Count(&pausedCustomers)

	avgRating := struct{ Avg float64 }{}
	db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg").
		Where("is_approved = ?", true).
		Scan(&avgRating)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"newCustomersThisMonth": newThisMonth,
			"recurringCustomers":    withRecurring,
			"pausedCustomers":       pausedCustomers,
			"averageRating":         avgRating.Avg,
		},
	})
}
