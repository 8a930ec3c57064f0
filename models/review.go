package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is tied to a completed appointment and needs admin approval
// before it shows up publicly.
type Review struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Title   string `json:"title"`
	Comment string `gorm:"type:text" json:"comment"`

	IsApproved bool       `gorm:"default:false" json:"isApproved"`
	IsFeatured bool       `gorm:"default:false" json:"isFeatured"`
	ApprovedAt *time.Time `json:"approvedAt"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approvedBy"`

	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
