package model

import "time"

// Method names a payment provider adapter.
type Method string

const (
	MethodMpesa    Method = "mpesa"
	MethodPaystack Method = "paystack"
)

// DefaultMethod is used when a booking request names no provider.
const DefaultMethod = MethodPaystack

// Charge is what a gateway is asked to collect for one reservation.
type Charge struct {
	BookingID string
	Name      string
	Email     string
	Phone     string
	Amount    float64
	Currency  string
}

// Artifact is what the guest needs to complete the payment: a redirect URL
// for hosted checkout, or an instruction for push payments. Reference is the
// provider correlation id later seen in callbacks.
type Artifact struct {
	Method       Method
	Reference    string
	RedirectURL  string
	Instructions string
}

// Outcome is a provider's verdict on a payment.
type Outcome struct {
	Method    Method
	Reference string
	Paid      bool
	BookingID string
	Receipt   string
	Amount    float64
	Message   string
	PaidAt    time.Time
}
