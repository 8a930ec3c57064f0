// services/payment_gateway.go
package services

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentIntent is the slice of the processor's intent object the backend
// cares about.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string // "succeeded", "processing", anything else is a failure
	ChargeID     string
	Last4        string
	CardBrand    string
}

// PaymentGateway is the charge-intent capability. The Stripe implementation
// is swapped for a stub in tests.
type PaymentGateway interface {
	CreateIntent(amountCents int64, currency string, metadata map[string]string, description string) (*PaymentIntent, error)
	RetrieveIntent(id string) (*PaymentIntent, error)
}

// Gateway is the process-wide payment gateway, Stripe by default.
var Gateway PaymentGateway = &StripeGateway{}

type StripeGateway struct{}

func (g *StripeGateway) CreateIntent(amountCents int64, currency string, metadata map[string]string, description string) (*PaymentIntent, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) RetrieveIntent(id string) (*PaymentIntent, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{}
	params.AddExpand("latest_charge")

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve intent: %w", err)
	}

	intent := &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}
	if pi.LatestCharge != nil {
		intent.ChargeID = pi.LatestCharge.ID
		if pi.LatestCharge.PaymentMethodDetails != nil && pi.LatestCharge.PaymentMethodDetails.Card != nil {
			intent.Last4 = pi.LatestCharge.PaymentMethodDetails.Card.Last4
			intent.CardBrand = string(pi.LatestCharge.PaymentMethodDetails.Card.Brand)
		}
	}
	return intent, nil
}
