package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote lifecycle, independent of appointments
const (
	QuotePending  = "pending"
	QuoteReviewed = "reviewed"
	QuoteQuoted   = "quoted"
	QuoteAccepted = "accepted"
	QuoteDeclined = "declined"
	QuoteExpired  = "expired"
)

// Quote is a lead-capture record; userId stays nil for anonymous visitors.
type Quote struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`

	Address string `gorm:"not null" json:"address"`
	City    string `gorm:"not null" json:"city"`
	State   string `gorm:"not null" json:"state"`
	ZipCode string `gorm:"not null" json:"zipCode"`
	LotSize int    `json:"lotSize"`

	ServiceType   string      `gorm:"not null" json:"serviceType"`
	Description   string      `gorm:"type:text" json:"description"`
	PreferredDate *time.Time  `json:"preferredDate"`
	Photos        StringArray `gorm:"type:jsonb;default:'[]'" json:"photos"`

	Status string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	EstimatedPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"estimatedPrice"`
	AdminNotes     string           `gorm:"type:text" json:"adminNotes"`
	QuotedAt       *time.Time       `json:"quotedAt"`
	ExpiresAt      *time.Time       `json:"expiresAt"`
	RespondedByID  *uuid.UUID       `gorm:"type:uuid" json:"respondedById"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
