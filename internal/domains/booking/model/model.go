package model

import (
	"time"
	paymentModel "villa/internal/domains/payment/model"
)

const (
	EntityName = "reservation"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusBlocked PaymentStatus = "blocked"
)

// Reservation is a stay at the property. Blocked reservations are
// administrative holds without a paying guest.
type Reservation struct {
	ID                       string
	GuestName                string
	GuestEmail               string
	GuestPhone               string
	CheckIn                  time.Time
	CheckOut                 time.Time
	Adults                   int
	Children                 int
	SpecialRequirements      *string
	TotalAmount              float64
	PaymentStatus            PaymentStatus
	PaymentMethod            paymentModel.Method
	ExternalPaymentReference *string
	CreatedAt                time.Time
}

// Clone returns a deep copy so pointer fields are never shared.
func (r Reservation) Clone() Reservation {
	if r.SpecialRequirements != nil {
		v := *r.SpecialRequirements
		r.SpecialRequirements = &v
	}

	if r.ExternalPaymentReference != nil {
		v := *r.ExternalPaymentReference
		r.ExternalPaymentReference = &v
	}

	return r
}

// Occupies reports whether the reservation holds its dates. Pending
// reservations never do.
func (r Reservation) Occupies() bool {
	return r.PaymentStatus == PaymentStatusPaid || r.PaymentStatus == PaymentStatusBlocked
}

// Nights is the length of the stay.
func (r Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) intersect. Touching
// ranges, where one checkout equals the other's check-in, do not.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// FindConflict returns the first occupying reservation whose stay overlaps
// [checkIn, checkOut).
func FindConflict(reservations []Reservation, checkIn, checkOut time.Time) (Reservation, bool) {
	for _, r := range reservations {
		if !r.Occupies() {
			continue
		}

		if Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			return r, true
		}
	}

	return Reservation{}, false
}
