package gateway

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripePayments creates payment intents so card payments can be collected
// client-side. The actual charge confirmation still flows through the
// gateway's ProcessPayment; this only prepares the intent.
type StripePayments struct {
	logger *zap.Logger
}

// NewStripePayments configures the Stripe client with the given secret key.
func NewStripePayments(apiKey string, logger *zap.Logger) *StripePayments {
	stripe.Key = apiKey
	return &StripePayments{logger: logger}
}

// CreatePaymentIntent creates an intent for the quoted amount (whole currency
// units) tagged with the order ID.
func (p *StripePayments) CreatePaymentIntent(orderID string, amount int, currency string) (*stripe.PaymentIntent, error) {
	if currency == "" {
		currency = "usd"
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount) * 100),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", orderID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	p.logger.Info("created payment intent",
		zap.String("orderID", orderID), zap.String("intentID", intent.ID), zap.Int("amount", amount))
	return intent, nil
}
