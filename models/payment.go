package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ErrDuplicatePayment is returned when an appointment already has a payment
// that is pending or completed.
var ErrDuplicatePayment = errors.New("payment already exists for this appointment")

type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	PaymentMethod string `gorm:"type:varchar(20);not null;default:'credit_card'" json:"paymentMethod"`

	StripePaymentIntentID string `gorm:"index" json:"stripePaymentIntentId"`
	StripeChargeID        string `json:"stripeChargeId"`
	Last4                 string `json:"last4"`
	CardBrand             string `json:"cardBrand"`

	// Assigned only when the payment succeeds. Nullable so the unique index
	// never collides on the rows that have no invoice yet.
	InvoiceNumber *string `gorm:"uniqueIndex" json:"invoiceNumber,omitempty"`

	PaidAt       *time.Time       `json:"paidAt"`
	RefundedAt   *time.Time       `json:"refundedAt"`
	RefundAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"refundAmount"`
	RefundReason string           `gorm:"type:text" json:"refundReason"`
	Notes        string           `gorm:"type:text" json:"notes"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// CreatePayment inserts a payment after verifying, inside the same
// transaction, that the appointment has no other pending or completed
// payment. This is the duplicate-payment race guard.
func CreatePayment(db *gorm.DB, payment *Payment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if payment.AppointmentID != nil {
			var count int64
			if err := tx.Model(&Payment{}).
				Where("appointment_id = ? AND status IN ?", *payment.AppointmentID,
					[]string{PaymentPending, PaymentCompleted}).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicatePayment
			}
		}
		return tx.Create(payment).Error
	})
}
