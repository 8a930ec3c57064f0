// services/quote_expiry_service.go
package services

import (
	"log"

	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// QuoteExpiryService sweeps quoted quotes whose offer window has lapsed.
type QuoteExpiryService struct {
	db *gorm.DB
}

func NewQuoteExpiryService(db *gorm.DB) *QuoteExpiryService {
	return &QuoteExpiryService{db: db}
}

func (s *QuoteExpiryService) StartScheduler() {
	c := cron.New()

	// Run every day at 1 AM
	c.AddFunc("0 1 * * *", s.ExpireOverdueQuotes)

	c.Start()
	log.Println("Quote expiry scheduler started")
}

// ExpireOverdueQuotes transitions quoted -> expired for quotes whose
// expiresAt has passed. The conditional WHERE keeps the sweep idempotent.
func (s *QuoteExpiryService) ExpireOverdueQuotes() {
	result := s.db.Model(&models.Quote{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.QuoteQuoted, utils.Now()).
		Update("status", models.QuoteExpired)

	if result.Error != nil {
		log.Printf("Failed to expire overdue quotes: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d overdue quotes", result.RowsAffected)
	}
}
