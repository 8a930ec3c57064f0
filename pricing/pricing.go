// Package pricing holds the booking price engine and the monthly recurring
// revenue aggregator. Everything here is pure so it can be exercised without
// a database.
package pricing

import (
	"errors"
	"fmt"

	"lawncare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPackageNotFound = errors.New("service package not found")
	ErrInvalidLotSize  = errors.New("lot size must be a positive number")
	ErrNegativePrice   = errors.New("price must be a non-negative number")
)

// Lot-size categories
const (
	TierSmall  = "small"
	TierMedium = "medium"
	TierLarge  = "large"
	TierXLarge = "xlarge"
)

// Default multipliers used when a package's pricing tiers omit a key
var (
	defaultSmall  = decimal.NewFromFloat(1.0)
	defaultMedium = decimal.NewFromFloat(1.2)
	defaultLarge  = decimal.NewFromFloat(1.5)
	defaultXLarge = decimal.NewFromFloat(2.0)
)

// AddOn is a priced add-on line resolved from the catalog.
type AddOn struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Breakdown is the result of a price calculation.
type Breakdown struct {
	SizeCategory string          `json:"sizeCategory"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	PackagePrice decimal.Decimal `json:"packagePrice"`
	AddOns       []AddOn         `json:"addOns"`
	AddOnsTotal  decimal.Decimal `json:"addOnsTotal"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// Multiplier selects the tier for a lot size (square feet) using half-open
// intervals: <5000 small, <10000 medium, <15000 large, otherwise xlarge.
// Missing tier keys fall back to the documented defaults.
func Multiplier(tiers models.PricingTiers, lotSize int) (string, decimal.Decimal, error) {
	if lotSize <= 0 {
		return "", decimal.Zero, ErrInvalidLotSize
	}

	pick := func(override *float64, fallback decimal.Decimal) decimal.Decimal {
		if override != nil {
			return decimal.NewFromFloat(*override)
		}
		return fallback
	}

	switch {
	case lotSize < 5000:
		return TierSmall, pick(tiers.Small, defaultSmall), nil
	case lotSize < 10000:
		return TierMedium, pick(tiers.Medium, defaultMedium), nil
	case lotSize < 15000:
		return TierLarge, pick(tiers.Large, defaultLarge), nil
	default:
		return TierXLarge, pick(tiers.XLarge, defaultXLarge), nil
	}
}

// Calculate computes the full price breakdown for a booking. All arithmetic
// is fixed-point with a final 2-digit scale per monetary value.
func Calculate(basePrice decimal.Decimal, lotSize int, tiers models.PricingTiers, addOns []AddOn) (*Breakdown, error) {
	if basePrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	category, multiplier, err := Multiplier(tiers, lotSize)
	if err != nil {
		return nil, err
	}

	packagePrice := basePrice.Mul(multiplier).Round(2)

	addOnsTotal := decimal.Zero
	lines := make([]AddOn, 0, len(addOns))
	for _, a := range addOns {
		if a.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		if a.Quantity <= 0 {
			a.Quantity = 1
		}
		addOnsTotal = addOnsTotal.Add(a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))))
		lines = append(lines, a)
	}
	addOnsTotal = addOnsTotal.Round(2)

	return &Breakdown{
		SizeCategory: category,
		Multiplier:   multiplier,
		PackagePrice: packagePrice,
		AddOns:       lines,
		AddOnsTotal:  addOnsTotal,
		TotalPrice:   packagePrice.Add(addOnsTotal).Round(2),
	}, nil
}

// ResolveAddOns matches requested add-on ids against the active services
// fetched from the catalog. Ids that resolve to nothing are dropped, but each
// drop is reported as a warning instead of disappearing silently.
func ResolveAddOns(requested []uuid.UUID, active []models.Service) ([]AddOn, []string) {
	byID := make(map[uuid.UUID]models.Service, len(active))
	for _, s := range active {
		byID[s.ID] = s
	}

	var addOns []AddOn
	var warnings []string
	for _, id := range requested {
		svc, ok := byID[id]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("add-on %s is inactive or does not exist and was skipped", id))
			continue
		}
		addOns = append(addOns, AddOn{
			ID:       svc.ID,
			Name:     svc.Name,
			Price:    svc.Price,
			Quantity: 1,
		})
	}
	return addOns, warnings
}
