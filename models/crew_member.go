package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CrewMember struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string     `gorm:"not null" json:"firstName"`
	LastName  string     `gorm:"not null" json:"lastName"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Role      string     `gorm:"not null;default:'technician'" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	HireDate  *time.Time `json:"hireDate"`
	PhotoURL  string     `json:"photoUrl"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *CrewMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
