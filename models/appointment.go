package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Appointment statuses. "rescheduled" is a display label for a scheduled
// appointment that has been moved; it obeys the same transition rules as
// "scheduled".
const (
	StatusScheduled   = "scheduled"
	StatusInProgress  = "in-progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
	StatusPaused      = "paused"
)

const (
	FrequencyOneTime  = "one-time"
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

// Lifecycle guard violations. Controllers map these to HTTP 400s.
var (
	ErrInvalidTransition     = errors.New("invalid appointment status transition")
	ErrAlreadyCompleted      = errors.New("appointment is already completed")
	ErrAlreadyCancelled      = errors.New("appointment is already cancelled")
	ErrCannotCancelCompleted = errors.New("cannot cancel completed appointment")
)

type Appointment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	PropertyID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"propertyId"`
	ServicePackageID uuid.UUID  `gorm:"type:uuid;index;not null" json:"servicePackageId"`
	CrewMemberID     *uuid.UUID `gorm:"type:uuid;index" json:"crewMemberId"`

	ScheduledDate time.Time `gorm:"not null" json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"` // "09:00 AM" format

	Status    string `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Frequency string `gorm:"type:varchar(20);not null;default:'one-time'" json:"frequency"`

	// Snapshot computed at booking, mutated only by add-on changes
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	SpecialInstructions string `gorm:"type:text" json:"specialInstructions"`

	CompletedAt     *time.Time `json:"completedAt"`
	CompletionNotes string     `gorm:"type:text" json:"completionNotes"`
	ActualDuration  int        `json:"actualDuration"` // minutes
	WeatherCondition string    `json:"weatherCondition"`

	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason string     `gorm:"type:text" json:"cancellationReason"`

	WeatherDelay bool   `gorm:"default:false" json:"weatherDelay"`
	Notes        string `gorm:"type:text" json:"notes"`

	User           *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Property       *Property            `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	ServicePackage *ServicePackage      `gorm:"foreignKey:ServicePackageID" json:"servicePackage,omitempty"`
	CrewMember     *CrewMember          `gorm:"foreignKey:CrewMemberID" json:"crewMember,omitempty"`
	Services       []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// Reschedule moves the appointment to a new date/time. Legal only while the
// work has not finished one way or the other.
func (a *Appointment) Reschedule(date time.Time, timeOfDay string) error {
	if a.IsTerminal() {
		return ErrInvalidTransition
	}
	a.ScheduledDate = date
	if timeOfDay != "" {
		a.ScheduledTime = timeOfDay
	}
	return nil
}

// Complete marks the appointment done and records completion metadata.
func (a *Appointment) Complete(notes string, duration int, weather string, now time.Time) error {
	if a.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if a.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.CompletionNotes = notes
	a.ActualDuration = duration
	a.WeatherCondition = weather
	return nil
}

// Cancel marks the appointment cancelled with a reason.
func (a *Appointment) Cancel(reason string, now time.Time) error {
	if a.Status == StatusCompleted {
		return ErrCannotCancelCompleted
	}
	if a.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if reason == "" {
		reason = "No reason provided"
	}
	a.Status = StatusCancelled
	a.CancelledAt = &now
	a.CancellationReason = reason
	return nil
}

// CanModifyServices reports whether add-ons may still be attached.
func (a *Appointment) CanModifyServices() bool {
	return !a.IsTerminal()
}

// AppointmentService joins an appointment to an add-on with the price
// snapshotted at attach time. Snapshots are immutable once priced.
type AppointmentService struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;index;not null" json:"appointmentId"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"serviceId"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity      int             `gorm:"default:1" json:"quantity"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Quantity <= 0 {
		s.Quantity = 1
	}
	return
}

// Subtotal is the snapshot price times quantity.
func (s *AppointmentService) Subtotal() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
