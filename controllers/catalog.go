// controllers/catalog.go
package controllers

import (
	"errors"
	"net/http"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/pricing"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetServicePackages lists the active packages for the public catalog.
func GetServicePackages(c *gin.Context) {
	var packages []models.ServicePackage
	if err := config.DB.Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service packages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": packages})
}

// GetAddOnServices lists the active add-on services.
func GetAddOnServices(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("sort_order ASC, created_at ASC").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
}

type CalculatePriceInput struct {
	PackageID uuid.UUID   `json:"packageId" binding:"required"`
	LotSize   int         `json:"lotSize" binding:"required"`
	AddOnIDs  []uuid.UUID `json:"addOnIds"`
}

// CalculatePrice prices a prospective booking for a package, lot size and
// add-on selection.
func CalculatePrice(c *gin.Context) {
	var input CalculatePriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Package ID and lot size are required")
		return
	}

	breakdown, servicePackage, err := priceForPackage(input.PackageID, input.LotSize, input.AddOnIDs)
	if err != nil {
		respondPricingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"package": gin.H{
				"id":              servicePackage.ID,
				"name":            servicePackage.Name,
				"basePrice":       servicePackage.BasePrice,
				"multiplier":      breakdown.Multiplier,
				"calculatedPrice": breakdown.PackagePrice,
			},
			"sizeCategory": breakdown.SizeCategory,
			"addOns":       breakdown.AddOns,
			"addOnsTotal":  breakdown.AddOnsTotal,
			"totalPrice":   breakdown.TotalPrice,
			"warnings":     breakdown.Warnings,
			"lotSize":      input.LotSize,
		},
	})
}

// priceForPackage loads the package and selected active add-ons, then runs
// the pricing engine. Shared by price calculation and booking creation.
func priceForPackage(packageID uuid.UUID, lotSize int, addOnIDs []uuid.UUID) (*pricing.Breakdown, *models.ServicePackage, error) {
	var servicePackage models.ServicePackage
	if err := config.DB.First(&servicePackage, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pricing.ErrPackageNotFound
		}
		return nil, nil, err
	}

	var addOns []pricing.AddOn
	var warnings []string
	if len(addOnIDs) > 0 {
		var active []models.Service
		if err := config.DB.Where("id IN ? AND is_active = ?", addOnIDs, true).
			Find(&active).Error; err != nil {
			return nil, nil, err
		}
		addOns, warnings = pricing.ResolveAddOns(addOnIDs, active)
	}

	breakdown, err := pricing.Calculate(servicePackage.BasePrice, lotSize, servicePackage.PricingTiers, addOns)
	if err != nil {
		return nil, nil, err
	}
	breakdown.Warnings = warnings
	return breakdown, &servicePackage, nil
}

func respondPricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrPackageNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Service package not found")
	case errors.Is(err, pricing.ErrInvalidLotSize):
		utils.RespondWithError(c, http.StatusBadRequest, "Valid lot size is required")
	case errors.Is(err, pricing.ErrNegativePrice):
		utils.RespondWithError(c, http.StatusBadRequest, "Prices must be non-negative")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate price")
	}
}

type QuickQuoteInput struct {
	LotSize     int    `json:"lotSize" binding:"required"`
	PackageName string `json:"packageName"`
}

// QuickQuote estimates prices across every active package for a lot size; a
// lead-capture endpoint, no authentication required.
func QuickQuote(c *gin.Context) {
	var input QuickQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil || input.LotSize <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Valid lot size is required")
		return
	}

	var allPackages []models.ServicePackage
	if err := config.DB.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&allPackages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate quote")
		return
	}
	if len(allPackages) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No active service packages found")
		return
	}

	// Preferred package: requested by name, then "Premium Care", then the
	// first active package.
	selected := allPackages[0]
	for _, name := range []string{input.PackageName, "Premium Care"} {
		if name == "" {
			continue
		}
		found := false
		for _, pkg := range allPackages {
			if pkg.Name == name {
				selected = pkg
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	sizeCategory := ""
	options := make([]gin.H, 0, len(allPackages))
	var selectedEstimate decimal.Decimal
	for _, pkg := range allPackages {
		category, multiplier, err := pricing.Multiplier(pkg.PricingTiers, input.LotSize)
		if err != nil {
			respondPricingError(c, err)
			return
		}
		sizeCategory = category
		estimate := pkg.BasePrice.Mul(multiplier).Round(2)
		if pkg.ID == selected.ID {
			selectedEstimate = estimate
		}
		options = append(options, gin.H{
			"id":             pkg.ID,
			"name":           pkg.Name,
			"description":    pkg.Description,
			"basePrice":      pkg.BasePrice,
			"estimatedPrice": estimate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"lotSize":      input.LotSize,
			"sizeCategory": sizeCategory,
			"selectedPackage": gin.H{
				"name":           selected.Name,
				"description":    selected.Description,
				"estimatedPrice": selectedEstimate,
			},
			"allPackages": options,
			"disclaimer":  "This is an estimate. Final price may vary based on property condition and selected add-ons.",
		},
	})
}
