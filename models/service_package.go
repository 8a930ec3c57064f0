package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingTiers maps lot-size categories to price multipliers. Keys are
// optional; a nil pointer means "use the documented default for that tier".
type PricingTiers struct {
	Small  *float64 `json:"small,omitempty"`
	Medium *float64 `json:"medium,omitempty"`
	Large  *float64 `json:"large,omitempty"`
	XLarge *float64 `json:"xlarge,omitempty"`
}

func (t PricingTiers) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *PricingTiers) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported type for PricingTiers")
	}
}

// StringArray is a JSONB-backed list of feature strings
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for StringArray")
	}
}

type ServicePackage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basePrice"`

	Features     StringArray  `gorm:"type:jsonb;default:'[]'" json:"features"`
	PricingTiers PricingTiers `gorm:"type:jsonb;default:'{}'" json:"pricingTiers"`

	IsActive  bool `gorm:"default:true" json:"isActive"`
	SortOrder int  `gorm:"default:0" json:"sortOrder"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *ServicePackage) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
