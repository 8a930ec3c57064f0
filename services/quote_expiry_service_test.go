package services

import (
	"testing"
	"time"

	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQuoteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Quote{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createQuote(t *testing.T, db *gorm.DB, status string, expiresAt *time.Time) models.Quote {
	t.Helper()
	quote := models.Quote{
		FirstName:   "Dana",
		LastName:    "Whitfield",
		Email:       "dana@example.com",
		Phone:       "+15125551234",
		Address:     "44 Oak Ln",
		City:        "Austin",
		State:       "TX",
		ZipCode:     "78702",
		ServiceType: "mowing",
		Status:      status,
		ExpiresAt:   expiresAt,
	}
	require.NoError(t, db.Create(&quote).Error)
	return quote
}

func TestExpireOverdueQuotes(t *testing.T) {
	db := setupQuoteDB(t)

	frozen := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	utils.Now = func() time.Time { return frozen }
	t.Cleanup(func() { utils.Now = time.Now })

	past := frozen.AddDate(0, 0, -1)
	future := frozen.AddDate(0, 0, 10)

	overdue := createQuote(t, db, models.QuoteQuoted, &past)
	stillOpen := createQuote(t, db, models.QuoteQuoted, &future)
	pendingNoWindow := createQuote(t, db, models.QuotePending, nil)
	acceptedOld := createQuote(t, db, models.QuoteAccepted, &past)

	svc := NewQuoteExpiryService(db)
	svc.ExpireOverdueQuotes()

	statusOf := func(id uuid.UUID) string {
		var q models.Quote
		require.NoError(t, db.First(&q, "id = ?", id).Error)
		return q.Status
	}

	assert.Equal(t, models.QuoteExpired, statusOf(overdue.ID))
	assert.Equal(t, models.QuoteQuoted, statusOf(stillOpen.ID))
	assert.Equal(t, models.QuotePending, statusOf(pendingNoWindow.ID))
	assert.Equal(t, models.QuoteAccepted, statusOf(acceptedOld.ID))

	// Running the sweep again changes nothing
	svc.ExpireOverdueQuotes()
	assert.Equal(t, models.QuoteExpired, statusOf(overdue.ID))
}
