package pricing

import (
	"lawncare-backend/models"

	"github.com/shopspring/decimal"
)

// Monthly-equivalent contribution multipliers per frequency
var frequencyMultipliers = map[string]int64{
	models.FrequencyWeekly:   4,
	models.FrequencyBiWeekly: 2,
	models.FrequencyMonthly:  1,
}

// MonthlyRecurringRevenue estimates MRR from the given appointments.
// One-time and cancelled appointments contribute nothing. Rounding happens
// once at the end so per-item rounding error cannot accumulate.
func MonthlyRecurringRevenue(appointments []models.Appointment) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range appointments {
		if !countsTowardMRR(a) {
			continue
		}
		factor := frequencyMultipliers[a.Frequency]
		sum = sum.Add(a.TotalPrice.Mul(decimal.NewFromInt(factor)))
	}
	return sum.Round(2)
}

func countsTowardMRR(a models.Appointment) bool {
	if _, recurring := frequencyMultipliers[a.Frequency]; !recurring {
		return false
	}
	switch a.Status {
	case models.StatusScheduled, models.StatusInProgress, models.StatusCompleted:
		return true
	default:
		return false
	}
}
