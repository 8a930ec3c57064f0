package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Address string `gorm:"not null" json:"address"`
	City    string `gorm:"not null" json:"city"`
	State   string `gorm:"not null" json:"state"`
	ZipCode string `gorm:"not null" json:"zipCode"`

	// Lot size in square feet, drives the pricing tier
	LotSize int `gorm:"not null" json:"lotSize"`

	SpecialInstructions string `gorm:"type:text" json:"specialInstructions"`
	GateCode            string `json:"gateCode"`
	HasBackyard         bool   `gorm:"default:false" json:"hasBackyard"`
	HasDogs             bool   `gorm:"default:false" json:"hasDogs"`

	// At most one primary property per owner, enforced transactionally
	IsPrimary bool `gorm:"default:true" json:"isPrimary"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// SetPrimary flips the primary flag to this property inside a single
// transaction so the owner never ends up with zero or two primaries.
func SetPrimary(db *gorm.DB, userID, propertyID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Property{}).
			Where("user_id = ? AND id <> ?", userID, propertyID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&Property{}).
			Where("user_id = ? AND id = ?", userID, propertyID).
			Update("is_primary", true).Error
	})
}
