package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database per test keeps the schema visible to
	// every pooled connection without leaking between tests.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Property{},
		&ServicePackage{},
		&Service{},
		&Appointment{},
		&AppointmentService{},
		&Payment{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) User {
	t.Helper()
	user := User{
		FirstName: "Jordan",
		LastName:  "Reyes",
		Email:     uuid.NewString() + "@example.com",
		Password:  "password123",
		Role:      RoleCustomer,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProperty(t *testing.T, db *gorm.DB, userID uuid.UUID, primary bool) Property {
	t.Helper()
	property := Property{
		UserID:    userID,
		Address:   "123 Maple St",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78701",
		LotSize:   6000,
		IsPrimary: primary,
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func TestSetPrimaryLeavesExactlyOne(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	createTestProperty(t, db, user.ID, true)
	second := createTestProperty(t, db, user.ID, false)
	third := createTestProperty(t, db, user.ID, false)

	require.NoError(t, SetPrimary(db, user.ID, second.ID))

	var primaries []Property
	require.NoError(t, db.Where("user_id = ? AND is_primary = ?", user.ID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)

	// Flipping again moves the flag, never duplicates it
	require.NoError(t, SetPrimary(db, user.ID, third.ID))
	require.NoError(t, db.Where("user_id = ? AND is_primary = ?", user.ID, true).Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, third.ID, primaries[0].ID)
}

func TestSetPrimaryDoesNotTouchOtherOwners(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	aliceProp := createTestProperty(t, db, alice.ID, true)
	bobFirst := createTestProperty(t, db, bob.ID, true)
	bobSecond := createTestProperty(t, db, bob.ID, false)

	require.NoError(t, SetPrimary(db, bob.ID, bobSecond.ID))

	var aliceFresh Property
	require.NoError(t, db.First(&aliceFresh, "id = ?", aliceProp.ID).Error)
	assert.True(t, aliceFresh.IsPrimary)

	var bobFresh Property
	require.NoError(t, db.First(&bobFresh, "id = ?", bobFirst.ID).Error)
	assert.False(t, bobFresh.IsPrimary)
}

func createTestAppointment(t *testing.T, db *gorm.DB, userID uuid.UUID, status string) Appointment {
	t.Helper()
	property := createTestProperty(t, db, userID, false)
	pkg := ServicePackage{
		Name:        "Basic Cut",
		Description: "Weekly mowing",
		BasePrice:   decimal.NewFromInt(35),
	}
	require.NoError(t, db.Create(&pkg).Error)

	appointment := Appointment{
		UserID:           userID,
		PropertyID:       property.ID,
		ServicePackageID: pkg.ID,
		ScheduledDate:    testNow,
		ScheduledTime:    "09:00 AM",
		Status:           status,
		Frequency:        FrequencyWeekly,
		TotalPrice:       decimal.NewFromInt(42),
	}
	require.NoError(t, db.Create(&appointment).Error)
	return appointment
}

func TestCreatePaymentRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	appointment := createTestAppointment(t, db, user.ID, StatusScheduled)

	first := Payment{
		UserID:        user.ID,
		AppointmentID: &appointment.ID,
		Amount:        appointment.TotalPrice,
		Status:        PaymentPending,
	}
	require.NoError(t, CreatePayment(db, &first))

	second := Payment{
		UserID:        user.ID,
		AppointmentID: &appointment.ID,
		Amount:        appointment.TotalPrice,
		Status:        PaymentPending,
	}
	err := CreatePayment(db, &second)
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	var count int64
	db.Model(&Payment{}).Where("appointment_id = ?", appointment.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreatePaymentAllowsRetryAfterFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	appointment := createTestAppointment(t, db, user.ID, StatusScheduled)

	failed := Payment{
		UserID:        user.ID,
		AppointmentID: &appointment.ID,
		Amount:        appointment.TotalPrice,
		Status:        PaymentFailed,
	}
	require.NoError(t, CreatePayment(db, &failed))

	retry := Payment{
		UserID:        user.ID,
		AppointmentID: &appointment.ID,
		Amount:        appointment.TotalPrice,
		Status:        PaymentPending,
	}
	assert.NoError(t, CreatePayment(db, &retry))
}

func TestCreatePaymentPendingForSeparateAppointments(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	first := createTestAppointment(t, db, user.ID, StatusScheduled)
	second := createTestAppointment(t, db, user.ID, StatusScheduled)

	// Neither payment has an invoice number yet. Both must persist, so the
	// invoice uniqueness must not apply to rows that never got one.
	pendingFirst := Payment{
		UserID:        user.ID,
		AppointmentID: &first.ID,
		Amount:        first.TotalPrice,
		Status:        PaymentPending,
	}
	require.NoError(t, CreatePayment(db, &pendingFirst))

	pendingSecond := Payment{
		UserID:        user.ID,
		AppointmentID: &second.ID,
		Amount:        second.TotalPrice,
		Status:        PaymentPending,
	}
	assert.NoError(t, CreatePayment(db, &pendingSecond))

	invoice := "INV-20260101-AAAAAAAA"
	require.NoError(t, db.Model(&pendingFirst).
		Updates(map[string]interface{}{"status": PaymentCompleted, "invoice_number": invoice}).Error)

	var completedFresh Payment
	require.NoError(t, db.First(&completedFresh, "id = ?", pendingFirst.ID).Error)
	require.NotNil(t, completedFresh.InvoiceNumber)
	assert.Equal(t, invoice, *completedFresh.InvoiceNumber)

	var pendingFresh Payment
	require.NoError(t, db.First(&pendingFresh, "id = ?", pendingSecond.ID).Error)
	assert.Nil(t, pendingFresh.InvoiceNumber)
}

func TestCreatePaymentWithoutAppointment(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	payment := Payment{
		UserID: user.ID,
		Amount: decimal.NewFromInt(50),
		Status: PaymentPending,
	}
	assert.NoError(t, CreatePayment(db, &payment))
}

func TestSnapshotSurvivesCatalogPriceChange(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	appointment := createTestAppointment(t, db, user.ID, StatusScheduled)

	addOn := Service{Name: "Aeration", Price: decimal.NewFromInt(30), Category: "addon", IsActive: true}
	require.NoError(t, db.Create(&addOn).Error)

	item := AppointmentService{
		AppointmentID: appointment.ID,
		ServiceID:     addOn.ID,
		Price:         addOn.Price,
		Quantity:      1,
	}
	require.NoError(t, db.Create(&item).Error)

	// Catalog price moves after booking
	require.NoError(t, db.Model(&addOn).Update("price", decimal.NewFromInt(99)).Error)

	var fresh AppointmentService
	require.NoError(t, db.First(&fresh, "id = ?", item.ID).Error)
	assert.Equal(t, "30.00", fresh.Price.StringFixed(2))

	var freshAppt Appointment
	require.NoError(t, db.First(&freshAppt, "id = ?", appointment.ID).Error)
	assert.Equal(t, "42.00", freshAppt.TotalPrice.StringFixed(2))
}

func TestPauseResumeBulkUpdateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	recurring := createTestAppointment(t, db, user.ID, StatusScheduled)
	oneTime := createTestAppointment(t, db, user.ID, StatusScheduled)
	require.NoError(t, db.Model(&oneTime).Update("frequency", FrequencyOneTime).Error)
	completed := createTestAppointment(t, db, user.ID, StatusCompleted)

	pause := func() int64 {
		result := db.Model(&Appointment{}).
			Where("user_id = ? AND status = ?", user.ID, StatusScheduled).
			Update("status", StatusPaused)
		require.NoError(t, result.Error)
		return result.RowsAffected
	}

	assert.EqualValues(t, 2, pause())
	assert.EqualValues(t, 0, pause()) // second pause is a no-op

	var recurringFresh Appointment
	require.NoError(t, db.First(&recurringFresh, "id = ?", recurring.ID).Error)
	assert.Equal(t, StatusPaused, recurringFresh.Status)

	var oneTimeFresh Appointment
	require.NoError(t, db.First(&oneTimeFresh, "id = ?", oneTime.ID).Error)
	assert.Equal(t, StatusPaused, oneTimeFresh.Status)

	var completedFresh Appointment
	require.NoError(t, db.First(&completedFresh, "id = ?", completed.ID).Error)
	assert.Equal(t, StatusCompleted, completedFresh.Status)

	resume := db.Model(&Appointment{}).
		Where("user_id = ? AND status = ?", user.ID, StatusPaused).
		Update("status", StatusScheduled)
	require.NoError(t, resume.Error)
	assert.EqualValues(t, 2, resume.RowsAffected)
}

func TestAppointmentServiceQuantityDefault(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	appointment := createTestAppointment(t, db, user.ID, StatusScheduled)

	addOn := Service{Name: "Edging", Price: decimal.NewFromInt(15), Category: "addon", IsActive: true}
	require.NoError(t, db.Create(&addOn).Error)

	item := AppointmentService{
		AppointmentID: appointment.ID,
		ServiceID:     addOn.ID,
		Price:         addOn.Price,
	}
	require.NoError(t, db.Create(&item).Error)
	assert.Equal(t, 1, item.Quantity)
}
