package dto

import (
	"fmt"
	"strings"
	"time"
	"villa/internal/domains/booking/model"
	paymentModel "villa/internal/domains/payment/model"
	"villa/shared/constant"
	"villa/shared/timezone"
)

// CreateBookingRequest is the booking form. Any client-sent total is ignored;
// the price is always computed server side.
type CreateBookingRequest struct {
	Name                string `json:"name"                          validate:"required,min=2,max=100"`
	Email               string `json:"email"                         validate:"required,email"`
	Phone               string `json:"phone"                         validate:"required,phone"`
	CheckIn             string `json:"checkIn"                       validate:"required,date"`
	CheckOut            string `json:"checkOut"                      validate:"required,date"`
	Adults              int    `json:"adults"                        validate:"gte=1"`
	Children            int    `json:"children"                      validate:"gte=0"`
	SpecialRequirements string `json:"specialRequirements,omitempty" validate:"omitempty,max=2000"`
	PaymentMethod       string `json:"paymentMethod,omitempty"       validate:"omitempty,max=20"`
}

// Stay parses the requested dates as calendar days.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(constant.RequestDateFormat, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid checkIn: %w", err)
	}

	checkOut, err = timezone.ParseDate(constant.RequestDateFormat, c.CheckOut)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid checkOut: %w", err)
	}

	return checkIn, checkOut, nil
}

// Method is the requested payment provider, defaulting when none was named.
func (c *CreateBookingRequest) Method() paymentModel.Method {
	if c.PaymentMethod == "" {
		return paymentModel.DefaultMethod
	}

	return paymentModel.Method(c.PaymentMethod)
}

func (c *CreateBookingRequest) ToModel(checkIn, checkOut time.Time, total float64, status model.PaymentStatus, method paymentModel.Method) model.Reservation {
	r := model.Reservation{
		GuestName:     strings.TrimSpace(c.Name),
		GuestEmail:    strings.TrimSpace(c.Email),
		GuestPhone:    strings.TrimSpace(c.Phone),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Adults:        c.Adults,
		Children:      c.Children,
		TotalAmount:   total,
		PaymentStatus: status,
		PaymentMethod: method,
	}

	if notes := strings.TrimSpace(c.SpecialRequirements); notes != "" {
		r.SpecialRequirements = &notes
	}

	return r
}

type CreateBookingResponse struct {
	BookingID              string `json:"bookingId"`
	Message                string `json:"message,omitempty"`
	PaymentURL             string `json:"paymentUrl,omitempty"`
	MpesaInstructions      string `json:"mpesaInstructions,omitempty"`
	MpesaCheckoutRequestID string `json:"mpesaCheckoutRequestId,omitempty"`
}

func (r *CreateBookingResponse) FromArtifact(bookingID string, artifact paymentModel.Artifact) {
	r.BookingID = bookingID

	switch artifact.Method {
	case paymentModel.MethodMpesa:
		r.MpesaInstructions = artifact.Instructions
		r.MpesaCheckoutRequestID = artifact.Reference
	default:
		r.PaymentURL = artifact.RedirectURL
	}
}

type ReservationResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Email                    string  `json:"email"`
	Phone                    string  `json:"phone"`
	CheckIn                  string  `json:"checkIn"`
	CheckOut                 string  `json:"checkOut"`
	Adults                   int     `json:"adults"`
	Children                 int     `json:"children"`
	SpecialRequirements      *string `json:"specialRequirements"`
	TotalAmount              float64 `json:"totalAmount"`
	PaymentStatus            string  `json:"paymentStatus"`
	PaymentMethod            string  `json:"paymentMethod,omitempty"`
	ExternalPaymentReference *string `json:"externalPaymentReference"`
	CreatedAt                string  `json:"createdAt"`
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	m = m.Clone()

	r.ID = m.ID
	r.Name = m.GuestName
	r.Email = m.GuestEmail
	r.Phone = m.GuestPhone
	r.CheckIn = m.CheckIn.Format(constant.RequestDateFormat)
	r.CheckOut = m.CheckOut.Format(constant.RequestDateFormat)
	r.Adults = m.Adults
	r.Children = m.Children
	r.SpecialRequirements = m.SpecialRequirements
	r.TotalAmount = m.TotalAmount
	r.PaymentStatus = string(m.PaymentStatus)
	r.PaymentMethod = string(m.PaymentMethod)
	r.ExternalPaymentReference = m.ExternalPaymentReference
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

func FromModels(models []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type AvailabilityResponse struct {
	CheckIn   string  `json:"checkIn"`
	CheckOut  string  `json:"checkOut"`
	Available bool    `json:"available"`
	Message   string  `json:"message,omitempty"`
	Nights    int     `json:"nights"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ReconcileResponse reports what the provider said about a pending payment.
type ReconcileResponse struct {
	BookingID     string `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"`
	Confirmed     bool   `json:"confirmed"`
	Message       string `json:"message,omitempty"`
}

// UnavailableMessage names the reservation blocking a request.
func UnavailableMessage(conflict model.Reservation) string {
	return fmt.Sprintf("Dates unavailable. The property is already booked from %s to %s.",
		conflict.CheckIn.Format(constant.RequestHumanDateFormat),
		conflict.CheckOut.Format(constant.RequestHumanDateFormat),
	)
}
