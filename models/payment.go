package models

// PaymentMethod selects how the customer pays for the move.
type PaymentMethod string

const (
	PaymentCard    PaymentMethod = "card"
	PaymentCash    PaymentMethod = "cash"
	PaymentPartial PaymentMethod = "partial"
)

// PaymentInfo holds the details entered at the payment step. Card fields are
// only set for card and partial payments.
type PaymentInfo struct {
	Method        PaymentMethod `json:"method"`
	CardNumber    string        `json:"cardNumber,omitempty"`
	ExpiryDate    string        `json:"expiryDate,omitempty"`
	CVV           string        `json:"cvv,omitempty"`
	PartialAmount int           `json:"partialAmount,omitempty"`
}
