package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lawncare-backend/config"
	"lawncare-backend/models"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quote{}))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createQuotedQuote(t *testing.T, db *gorm.DB, userID *uuid.UUID) models.Quote {
	t.Helper()
	price := decimal.NewFromInt(120)
	expires := utils.Now().AddDate(0, 0, 30)
	quote := models.Quote{
		UserID:         userID,
		FirstName:      "Dana",
		LastName:       "Whitfield",
		Email:          "dana@example.com",
		Phone:          "+15125551234",
		Address:        "44 Oak Ln",
		City:           "Austin",
		State:          "TX",
		ZipCode:        "78702",
		ServiceType:    "mowing",
		Status:         models.QuoteQuoted,
		EstimatedPrice: &price,
		ExpiresAt:      &expires,
	}
	require.NoError(t, db.Create(&quote).Error)
	return quote
}

func acceptQuoteRequest(quoteID uuid.UUID, userID uuid.UUID, role string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/quotes/"+quoteID.String()+"/accept", nil)
	c.Params = gin.Params{{Key: "id", Value: quoteID.String()}}
	c.Set("userId", userID.String())
	c.Set("role", role)
	AcceptQuote(c)
	return recorder
}

func TestAcceptQuoteByOwner(t *testing.T) {
	db := setupControllerDB(t)
	ownerID := uuid.New()
	quote := createQuotedQuote(t, db, &ownerID)

	recorder := acceptQuoteRequest(quote.ID, ownerID, models.RoleCustomer)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var fresh models.Quote
	require.NoError(t, db.First(&fresh, "id = ?", quote.ID).Error)
	assert.Equal(t, models.QuoteAccepted, fresh.Status)
}

func TestAcceptQuoteRejectsOtherUser(t *testing.T) {
	db := setupControllerDB(t)
	ownerID := uuid.New()
	quote := createQuotedQuote(t, db, &ownerID)

	recorder := acceptQuoteRequest(quote.ID, uuid.New(), models.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	var fresh models.Quote
	require.NoError(t, db.First(&fresh, "id = ?", quote.ID).Error)
	assert.Equal(t, models.QuoteQuoted, fresh.Status)
}

func TestAcceptQuoteAdminBypassesOwnership(t *testing.T) {
	db := setupControllerDB(t)
	ownerID := uuid.New()
	quote := createQuotedQuote(t, db, &ownerID)

	recorder := acceptQuoteRequest(quote.ID, uuid.New(), models.RoleAdmin)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var fresh models.Quote
	require.NoError(t, db.First(&fresh, "id = ?", quote.ID).Error)
	assert.Equal(t, models.QuoteAccepted, fresh.Status)
}

func TestAcceptQuoteAnonymousQuoteOpenToAnyUser(t *testing.T) {
	db := setupControllerDB(t)
	quote := createQuotedQuote(t, db, nil)

	recorder := acceptQuoteRequest(quote.ID, uuid.New(), models.RoleCustomer)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var fresh models.Quote
	require.NoError(t, db.First(&fresh, "id = ?", quote.ID).Error)
	assert.Equal(t, models.QuoteAccepted, fresh.Status)
}

func TestAcceptQuoteExpiredWindow(t *testing.T) {
	db := setupControllerDB(t)
	ownerID := uuid.New()
	quote := createQuotedQuote(t, db, &ownerID)

	past := utils.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&quote).Update("expires_at", past).Error)

	recorder := acceptQuoteRequest(quote.ID, ownerID, models.RoleCustomer)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var fresh models.Quote
	require.NoError(t, db.First(&fresh, "id = ?", quote.ID).Error)
	assert.Equal(t, models.QuoteExpired, fresh.Status)
}
