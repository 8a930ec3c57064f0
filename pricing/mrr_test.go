package pricing

import (
	"testing"

	"lawncare-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func appt(frequency, status string, price float64) models.Appointment {
	return models.Appointment{
		Frequency:  frequency,
		Status:     status,
		TotalPrice: decimal.NewFromFloat(price),
	}
}

func TestMonthlyRecurringRevenue(t *testing.T) {
	appointments := []models.Appointment{
		appt(models.FrequencyWeekly, models.StatusScheduled, 40),  // 40 * 4 = 160
		appt(models.FrequencyMonthly, models.StatusCompleted, 60), // 60 * 1 = 60
	}

	mrr := MonthlyRecurringRevenue(appointments)
	assert.Equal(t, "220.00", mrr.StringFixed(2))
}

func TestMonthlyRecurringRevenueFrequencyFactors(t *testing.T) {
	tests := []struct {
		frequency string
		expected  string
	}{
		{models.FrequencyWeekly, "400.00"},
		{models.FrequencyBiWeekly, "200.00"},
		{models.FrequencyMonthly, "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			mrr := MonthlyRecurringRevenue([]models.Appointment{
				appt(tt.frequency, models.StatusScheduled, 100),
			})
			assert.Equal(t, tt.expected, mrr.StringFixed(2))
		})
	}
}

func TestMonthlyRecurringRevenueExcludesOneTime(t *testing.T) {
	mrr := MonthlyRecurringRevenue([]models.Appointment{
		appt(models.FrequencyOneTime, models.StatusScheduled, 500),
	})
	assert.True(t, mrr.IsZero())
}

func TestMonthlyRecurringRevenueExcludesInactiveStatuses(t *testing.T) {
	for _, status := range []string{models.StatusCancelled, models.StatusPaused} {
		t.Run(status, func(t *testing.T) {
			mrr := MonthlyRecurringRevenue([]models.Appointment{
				appt(models.FrequencyWeekly, status, 100),
			})
			assert.True(t, mrr.IsZero())
		})
	}
}

func TestMonthlyRecurringRevenueCountsInProgress(t *testing.T) {
	mrr := MonthlyRecurringRevenue([]models.Appointment{
		appt(models.FrequencyBiWeekly, models.StatusInProgress, 75),
	})
	assert.Equal(t, "150.00", mrr.StringFixed(2))
}

func TestMonthlyRecurringRevenueEmpty(t *testing.T) {
	assert.True(t, MonthlyRecurringRevenue(nil).IsZero())
}

func TestMonthlyRecurringRevenueRoundsOnceAtEnd(t *testing.T) {
	// Three weekly bookings at $10.333 each: 3 * 10.333 * 4 = 123.996,
	// which rounds to 124.00. Per-item rounding would give 123.99.
	appointments := []models.Appointment{
		appt(models.FrequencyWeekly, models.StatusScheduled, 10.333),
		appt(models.FrequencyWeekly, models.StatusScheduled, 10.333),
		appt(models.FrequencyWeekly, models.StatusScheduled, 10.333),
	}
	mrr := MonthlyRecurringRevenue(appointments)
	assert.Equal(t, "124.00", mrr.StringFixed(2))
}
