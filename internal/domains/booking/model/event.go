package model

import "time"

type EventType string

const (
	EventCreated EventType = "booking.created"
	EventBlocked EventType = "booking.blocked"
	EventPaid    EventType = "booking.paid"
	EventDeleted EventType = "booking.deleted"
)

// Event is the payload published for every reservation state change.
type Event struct {
	Type          EventType `json:"type"`
	BookingID     string    `json:"bookingId"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	TotalAmount   float64   `json:"totalAmount"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewEvent(eventType EventType, r Reservation, occurredAt time.Time) Event {
	return Event{
		Type:          eventType,
		BookingID:     r.ID,
		CheckIn:       r.CheckIn.Format(time.DateOnly),
		CheckOut:      r.CheckOut.Format(time.DateOnly),
		PaymentStatus: string(r.PaymentStatus),
		PaymentMethod: string(r.PaymentMethod),
		TotalAmount:   r.TotalAmount,
		OccurredAt:    occurredAt,
	}
}
