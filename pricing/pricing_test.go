package pricing

import (
	"testing"

	"lawncare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestMultiplierTierBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		lotSize    int
		category   string
		multiplier string
	}{
		{"just below small cap", 4999, TierSmall, "1"},
		{"small cap is medium", 5000, TierMedium, "1.2"},
		{"just below medium cap", 9999, TierMedium, "1.2"},
		{"medium cap is large", 10000, TierLarge, "1.5"},
		{"just below large cap", 14999, TierLarge, "1.5"},
		{"large cap is xlarge", 15000, TierXLarge, "2"},
		{"well above large cap", 50000, TierXLarge, "2"},
		{"tiny lot", 1, TierSmall, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, multiplier, err := Multiplier(models.PricingTiers{}, tt.lotSize)
			require.NoError(t, err)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.multiplier, multiplier.String())
		})
	}
}

func TestMultiplierPackageOverrides(t *testing.T) {
	tiers := models.PricingTiers{Medium: f64(1.35)}

	_, m, err := Multiplier(tiers, 7500)
	require.NoError(t, err)
	assert.Equal(t, "1.35", m.String())

	// Missing keys still fall back to defaults
	_, m, err = Multiplier(tiers, 12000)
	require.NoError(t, err)
	assert.Equal(t, "1.5", m.String())
}

func TestMultiplierRejectsNonPositiveLotSize(t *testing.T) {
	for _, lotSize := range []int{0, -1, -5000} {
		_, _, err := Multiplier(models.PricingTiers{}, lotSize)
		assert.ErrorIs(t, err, ErrInvalidLotSize)
	}
}

func TestCalculateBreakdown(t *testing.T) {
	addOnID := uuid.New()
	breakdown, err := Calculate(
		decimal.NewFromInt(35),
		7000,
		models.PricingTiers{},
		[]AddOn{{ID: addOnID, Name: "Aeration", Price: decimal.NewFromInt(30), Quantity: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, TierMedium, breakdown.SizeCategory)
	assert.Equal(t, "42.00", breakdown.PackagePrice.StringFixed(2))
	assert.Equal(t, "30.00", breakdown.AddOnsTotal.StringFixed(2))
	assert.Equal(t, "72.00", breakdown.TotalPrice.StringFixed(2))
}

func TestCalculateNoAddOns(t *testing.T) {
	breakdown, err := Calculate(decimal.NewFromInt(50), 3000, models.PricingTiers{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "50.00", breakdown.TotalPrice.StringFixed(2))
	assert.True(t, breakdown.AddOnsTotal.IsZero())
	assert.Empty(t, breakdown.AddOns)
}

func TestCalculateQuantityDefaultsToOne(t *testing.T) {
	breakdown, err := Calculate(
		decimal.NewFromInt(10),
		1000,
		models.PricingTiers{},
		[]AddOn{{Price: decimal.NewFromInt(5), Quantity: 0}},
	)
	require.NoError(t, err)
	assert.Equal(t, "15.00", breakdown.TotalPrice.StringFixed(2))
	assert.Equal(t, 1, breakdown.AddOns[0].Quantity)
}

func TestCalculateQuantityMultiplies(t *testing.T) {
	breakdown, err := Calculate(
		decimal.NewFromInt(10),
		1000,
		models.PricingTiers{},
		[]AddOn{{Price: decimal.NewFromFloat(7.25), Quantity: 3}},
	)
	require.NoError(t, err)
	assert.Equal(t, "21.75", breakdown.AddOnsTotal.StringFixed(2))
	assert.Equal(t, "31.75", breakdown.TotalPrice.StringFixed(2))
}

func TestCalculateRejectsNegativePrices(t *testing.T) {
	_, err := Calculate(decimal.NewFromInt(-1), 1000, models.PricingTiers{}, nil)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Calculate(decimal.NewFromInt(10), 1000, models.PricingTiers{},
		[]AddOn{{Price: decimal.NewFromInt(-5)}})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestCalculatePropagatesLotSizeError(t *testing.T) {
	_, err := Calculate(decimal.NewFromInt(10), 0, models.PricingTiers{}, nil)
	assert.ErrorIs(t, err, ErrInvalidLotSize)
}

func TestCalculateRoundsToCents(t *testing.T) {
	// 33.33 * 1.2 = 39.996 which must land on a 2-decimal boundary
	breakdown, err := Calculate(decimal.NewFromFloat(33.33), 6000, models.PricingTiers{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "40.00", breakdown.PackagePrice.StringFixed(2))
	assert.Equal(t, "40.00", breakdown.TotalPrice.StringFixed(2))
}

func TestResolveAddOnsWarnsOnUnknownIDs(t *testing.T) {
	known := models.Service{ID: uuid.New(), Name: "Leaf Removal", Price: decimal.NewFromInt(45)}
	unknown := uuid.New()

	addOns, warnings := ResolveAddOns([]uuid.UUID{known.ID, unknown}, []models.Service{known})

	require.Len(t, addOns, 1)
	assert.Equal(t, known.ID, addOns[0].ID)
	assert.Equal(t, "Leaf Removal", addOns[0].Name)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], unknown.String())
}

func TestResolveAddOnsEmptyRequest(t *testing.T) {
	addOns, warnings := ResolveAddOns(nil, []models.Service{{ID: uuid.New()}})
	assert.Empty(t, addOns)
	assert.Empty(t, warnings)
}
