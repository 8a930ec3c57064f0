package models

import (
	"time"

	"lawncare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `gorm:"not null" json:"-"`

	Role         string `gorm:"type:varchar(20);not null;default:'customer'" json:"role"` // 'customer' or 'admin'
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	ProfilePhoto string `json:"profilePhoto"`

	LastLogin *time.Time `json:"lastLogin"`

	Properties   []Property    `gorm:"foreignKey:UserID" json:"properties,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:UserID" json:"appointments,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:UserID" json:"payments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// FullName joins first and last name for notifications and invoices.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
