// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"lawncare-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotificationService sends customer-facing messages via Twilio. All sends
// are best-effort: a delivery failure is logged, never propagated into the
// booking flow.
type NotificationService struct {
	client *twilio.RestClient
}

// Notifier is the process-wide notification sender, initialized in main.
var Notifier *NotificationService

func NewNotificationService() *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// SendBookingConfirmation texts the customer a summary of the new booking.
func (s *NotificationService) SendBookingConfirmation(appointment *models.Appointment, customer *models.User, property *models.Property, servicePackage *models.ServicePackage) {
	if s == nil || customer == nil || property == nil || servicePackage == nil || customer.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your %s service at %s is booked for %s %s. Total: $%s. Reply to this number with any questions.",
		customer.FirstName,
		servicePackage.Name,
		property.Address,
		appointment.ScheduledDate.Format("Jan 2, 2006"),
		appointment.ScheduledTime,
		appointment.TotalPrice.StringFixed(2),
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send booking confirmation to %s: %v", customer.Phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Booking confirmation sent to %s, SID: %s", customer.Phone, *resp.Sid)
	}
}
