package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"villa/config"
	"villa/infras/brevo"
	"villa/infras/otel"
	bookingModel "villa/internal/domains/booking/model"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	templateBookingRequested = "booking_requested.html"
	templatePaymentReceipt   = "payment_receipt.html"
	templatePaymentReceived  = "payment_received.html"

	longDateFormat = "Monday, January 2, 2006"
	shortIDLength  = 8
)

//go:embed templates/*.html
var templateFS embed.FS

// Notification sends the transactional emails of the booking lifecycle.
type Notification interface {
	// BookingRequested tells the operator a guest has started a booking.
	BookingRequested(ctx context.Context, reservation bookingModel.Reservation) error
	// PaymentReceipt sends the guest their receipt.
	PaymentReceipt(ctx context.Context, reservation bookingModel.Reservation) error
	// PaymentReceived tells the operator a booking has been paid.
	PaymentReceived(ctx context.Context, reservation bookingModel.Reservation) error
}

type serviceImpl struct {
	cfg       *config.Config
	client    brevo.Client
	templates *template.Template
	printer   *message.Printer
	otel      otel.Otel
}

func New(cfg *config.Config, client brevo.Client, otel otel.Otel) Notification {
	return &serviceImpl{
		cfg:       cfg,
		client:    client,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		printer:   message.NewPrinter(language.English),
		otel:      otel,
	}
}

type emailData struct {
	AppName             string
	OperatorName        string
	BookingID           string
	ShortID             string
	GuestName           string
	GuestEmail          string
	GuestPhone          string
	CheckIn             string
	CheckOut            string
	Nights              int
	Guests              string
	SpecialRequirements string
	Currency            string
	Total               string
	PaymentMethod       string
	Reference           string
}

func (s *serviceImpl) BookingRequested(ctx context.Context, reservation bookingModel.Reservation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.BookingRequested")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.send(ctx, templateBookingRequested, s.operator(),
		"New Booking Request from "+reservation.GuestName, reservation)
}

func (s *serviceImpl) PaymentReceipt(ctx context.Context, reservation bookingModel.Reservation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.PaymentReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	recipient := recipients{
		to: []brevo.Contact{{Email: reservation.GuestEmail, Name: reservation.GuestName}},
	}

	return s.send(ctx, templatePaymentReceipt, recipient,
		"Booking Confirmed - "+s.cfg.App.Name, reservation)
}

func (s *serviceImpl) PaymentReceived(ctx context.Context, reservation bookingModel.Reservation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.PaymentReceived")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.send(ctx, templatePaymentReceived, s.operator(),
		"Payment Received - "+reservation.GuestName, reservation)
}

type recipients struct {
	to []brevo.Contact
	cc []brevo.Contact
}

func (s *serviceImpl) operator() recipients {
	op := s.cfg.Mail.Operator

	r := recipients{
		to: []brevo.Contact{{Email: op.Email, Name: op.Name}},
	}

	if op.CCEmail != "" {
		r.cc = []brevo.Contact{{Email: op.CCEmail, Name: op.CCName}}
	}

	return r
}

func (s *serviceImpl) send(ctx context.Context, name string, r recipients, subject string, reservation bookingModel.Reservation) error {
	if len(r.to) == 0 || r.to[0].Email == "" {
		return fmt.Errorf("%s: no recipient configured", name)
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, s.data(reservation)); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	messageID, err := s.client.SendTransactionalEmail(ctx, brevo.Email{
		Sender: brevo.Contact{
			Email: s.cfg.Mail.Sender.Email,
			Name:  s.cfg.Mail.Sender.Name,
		},
		To:          r.to,
		Cc:          r.cc,
		Subject:     subject,
		HTMLContent: body.String(),
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}

	log.Info().
		Str("template", name).
		Str("bookingId", reservation.ID).
		Str("messageId", messageID).
		Msg("email sent")

	return nil
}

func (s *serviceImpl) data(r bookingModel.Reservation) emailData {
	d := emailData{
		AppName:       s.cfg.App.Name,
		OperatorName:  s.cfg.Mail.Operator.Name,
		BookingID:     r.ID,
		ShortID:       shortID(r.ID),
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		CheckIn:       r.CheckIn.Format(longDateFormat),
		CheckOut:      r.CheckOut.Format(longDateFormat),
		Nights:        r.Nights(),
		Guests:        GuestSummary(r.Adults, r.Children),
		Currency:      s.cfg.App.Currency,
		Total:         s.printer.Sprintf("%.0f", r.TotalAmount),
		PaymentMethod: string(r.PaymentMethod),
	}

	if r.SpecialRequirements != nil {
		d.SpecialRequirements = *r.SpecialRequirements
	}

	if r.ExternalPaymentReference != nil {
		d.Reference = *r.ExternalPaymentReference
	}

	return d
}

// GuestSummary renders party size as "2 Adults, 1 Child".
func GuestSummary(adults, children int) string {
	adultLabel, childLabel := "Adults", "Children"
	if adults == 1 {
		adultLabel = "Adult"
	}

	if children == 1 {
		childLabel = "Child"
	}

	return fmt.Sprintf("%d %s, %d %s", adults, adultLabel, children, childLabel)
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		id = id[:shortIDLength]
	}

	return strings.ToUpper(id)
}
