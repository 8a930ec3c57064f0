package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestCompleteFromScheduled(t *testing.T) {
	a := Appointment{Status: StatusScheduled}

	err := a.Complete("Mowed front and back", 45, "Sunny", testNow)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, a.Status)
	require.NotNil(t, a.CompletedAt)
	assert.Equal(t, testNow, *a.CompletedAt)
	assert.Equal(t, "Mowed front and back", a.CompletionNotes)
	assert.Equal(t, 45, a.ActualDuration)
	assert.Equal(t, "Sunny", a.WeatherCondition)
}

func TestCompleteIsNotRepeatable(t *testing.T) {
	a := Appointment{Status: StatusScheduled}
	require.NoError(t, a.Complete("first", 30, "", testNow))

	later := testNow.Add(time.Hour)
	err := a.Complete("second", 60, "", later)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// First completion metadata survives the rejected retry
	assert.Equal(t, "first", a.CompletionNotes)
	assert.Equal(t, testNow, *a.CompletedAt)
}

func TestCompleteCancelledAppointment(t *testing.T) {
	a := Appointment{Status: StatusCancelled}
	err := a.Complete("", 0, "", testNow)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, StatusCancelled, a.Status)
}

func TestCancelRecordsReason(t *testing.T) {
	a := Appointment{Status: StatusScheduled}

	err := a.Cancel("Moving out of state", testNow)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, a.Status)
	assert.Equal(t, "Moving out of state", a.CancellationReason)
	require.NotNil(t, a.CancelledAt)
	assert.Equal(t, testNow, *a.CancelledAt)
}

func TestCancelDefaultsReason(t *testing.T) {
	a := Appointment{Status: StatusScheduled}
	require.NoError(t, a.Cancel("", testNow))
	assert.Equal(t, "No reason provided", a.CancellationReason)
}

func TestCancelCompletedAppointment(t *testing.T) {
	a := Appointment{Status: StatusCompleted}
	err := a.Cancel("changed my mind", testNow)
	assert.ErrorIs(t, err, ErrCannotCancelCompleted)
	assert.Equal(t, StatusCompleted, a.Status)
}

func TestCancelIsNotRepeatable(t *testing.T) {
	a := Appointment{Status: StatusCancelled}
	err := a.Cancel("again", testNow)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestRescheduleNonTerminal(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusInProgress, StatusPaused, StatusRescheduled} {
		t.Run(status, func(t *testing.T) {
			a := Appointment{Status: status, ScheduledTime: "09:00 AM"}
			newDate := testNow.AddDate(0, 0, 7)

			err := a.Reschedule(newDate, "02:00 PM")
			require.NoError(t, err)
			assert.Equal(t, newDate, a.ScheduledDate)
			assert.Equal(t, "02:00 PM", a.ScheduledTime)
		})
	}
}

func TestReschedulePreservesTimeWhenOmitted(t *testing.T) {
	a := Appointment{Status: StatusScheduled, ScheduledTime: "09:00 AM"}
	require.NoError(t, a.Reschedule(testNow, ""))
	assert.Equal(t, "09:00 AM", a.ScheduledTime)
}

func TestRescheduleTerminalStates(t *testing.T) {
	for _, status := range []string{StatusCompleted, StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			a := Appointment{Status: status}
			err := a.Reschedule(testNow, "10:00 AM")
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[string]bool{
		StatusCompleted:   true,
		StatusCancelled:   true,
		StatusScheduled:   false,
		StatusPaused:      false,
		StatusInProgress:  false,
		StatusRescheduled: false,
	}
	for status, want := range terminal {
		a := Appointment{Status: status}
		assert.Equal(t, want, a.IsTerminal(), status)
		assert.Equal(t, !want, a.CanModifyServices(), status)
	}
}

func TestAppointmentServiceSubtotal(t *testing.T) {
	item := AppointmentService{Price: decimal.NewFromFloat(12.50), Quantity: 3}
	assert.Equal(t, "37.50", item.Subtotal().StringFixed(2))
}
