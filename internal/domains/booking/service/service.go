package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"villa/config"
	"villa/infras/kafka"
	"villa/infras/otel"
	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
	"villa/internal/domains/booking/repository"
	notificationService "villa/internal/domains/notification/service"
	paymentModel "villa/internal/domains/payment/model"
	paymentService "villa/internal/domains/payment/service"
	pricingModel "villa/internal/domains/pricing/model"
	pricingService "villa/internal/domains/pricing/service"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheAvailability = "booking:availability"

	MessageBlocked          = "Dates blocked successfully (Offline Booking)"
	MessageNotFound         = "Booking not found"
	MessageUnsupported      = "Unsupported payment method"
	MessageInitiateFailed   = "Failed to initiate payment. Please try again."
	MessageNothingToConfirm = "Booking has no payment to reconcile"
)

// Booking orchestrates the reservation lifecycle: availability, pricing,
// payment initiation, confirmation and notifications.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) (dto.MessageResponse, error)
	CheckAvailability(ctx context.Context, checkIn, checkOut time.Time) (dto.AvailabilityResponse, error)
	// ConfirmPayment applies a provider verdict. It reports whether the
	// reservation is paid afterwards; only the call that performs the
	// pending to paid transition sends the receipts.
	ConfirmPayment(ctx context.Context, outcome paymentModel.Outcome) (bool, error)
	// VerifyPayment asks the provider about reference, then confirms.
	VerifyPayment(ctx context.Context, method paymentModel.Method, reference string) (bool, error)
	Reconcile(ctx context.Context, id string) (dto.ReconcileResponse, error)
}

type serviceImpl struct {
	// mu makes the availability check and the insert one step.
	mu           sync.Mutex
	// cacheMu orders availability cache writes against invalidations.
	// version counts changes to the set of blocking reservations.
	cacheMu      sync.Mutex
	version      uint64
	repo         repository.Booking
	pricing      pricingService.Pricing
	payment      paymentService.Payment
	notification notificationService.Notification
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	pricing pricingService.Pricing,
	payment paymentService.Payment,
	notification notificationService.Notification,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		pricing:      pricing,
		payment:      payment,
		notification: notification,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = pricingModel.CheckStay(checkIn, checkOut, s.cfg.Pricing.MaxNights); err != nil {
		return res, failure.BadRequest(err)
	}

	admin := isAdmin(ctx)
	method := req.Method()

	if !admin && !s.payment.Supports(method) {
		return res, failure.BadRequestFromString(MessageUnsupported)
	}

	status := model.PaymentStatusPending
	if admin {
		status = model.PaymentStatusBlocked
		method = ""
	}

	total := s.pricing.Total(checkIn, checkOut)

	reservation, err := s.reserve(ctx, req.ToModel(checkIn, checkOut, total, status, method))
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		"booking.id":     reservation.ID,
		"booking.status": string(reservation.PaymentStatus),
		"booking.total":  reservation.TotalAmount,
	})

	if admin {
		log.Info().Str("bookingId", reservation.ID).Str("guest", reservation.GuestName).Msg("dates blocked by admin")

		s.availabilityChanged(ctx)

		go s.publish(context.WithoutCancel(ctx), model.EventBlocked, reservation)

		return dto.CreateBookingResponse{BookingID: reservation.ID, Message: MessageBlocked}, nil
	}

	artifact, err := s.payment.Initiate(ctx, method, paymentModel.Charge{
		BookingID: reservation.ID,
		Name:      reservation.GuestName,
		Email:     reservation.GuestEmail,
		Phone:     reservation.GuestPhone,
		Amount:    reservation.TotalAmount,
		Currency:  s.cfg.App.Currency,
	})
	if err != nil {
		log.Error().Err(err).Str("bookingId", reservation.ID).Str("method", string(method)).Msg("failed to initiate payment")

		return res, failure.InternalError(errors.New(initiateFailureMessage(method, err)))
	}

	if err = s.repo.UpdatePaymentReference(ctx, reservation.ID, artifact.Reference); err != nil {
		log.Error().Err(err).Str("bookingId", reservation.ID).Msg("failed to save payment reference")

		return res, fmt.Errorf("failed to save payment reference: %w", err)
	}

	reservation.ExternalPaymentReference = &artifact.Reference

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notification.BookingRequested(c, reservation); err != nil {
			log.Error().Err(err).Str("bookingId", reservation.ID).Msg("failed to send booking request email")
		}

		s.publish(c, model.EventCreated, reservation)
	}()

	res.FromArtifact(reservation.ID, artifact)

	return res, nil
}

// reserve checks availability and inserts under one lock.
func (s *serviceImpl) reserve(ctx context.Context, reservation model.Reservation) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return reservation, fmt.Errorf("failed to get reservations: %w", err)
	}

	if conflict, found := model.FindConflict(existing, reservation.CheckIn, reservation.CheckOut); found {
		return reservation, failure.Conflict(dto.UnavailableMessage(conflict))
	}

	created, err := s.repo.Insert(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return reservation, fmt.Errorf("failed to create reservation: %w", err)
	}

	return created, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return res, failure.NotFound(MessageNotFound)
		}

		log.Error().Err(err).Str("bookingId", id).Msg("failed to delete reservation")

		return res, fmt.Errorf("failed to delete reservation: %w", err)
	}

	log.Info().Str("bookingId", id).Str("guest", reservation.GuestName).Msg("reservation deleted by admin")

	s.availabilityChanged(ctx)

	go s.publish(context.WithoutCancel(ctx), model.EventDeleted, reservation)

	res.Message = fmt.Sprintf("Booking for %s deleted successfully. Dates are now free.", reservation.GuestName)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, checkIn, checkOut time.Time) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = pricingModel.CheckStay(checkIn, checkOut, s.cfg.Pricing.MaxNights); err != nil {
		return res, failure.BadRequest(err)
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability,
		checkIn.Format(constant.RequestDateFormat),
		checkOut.Format(constant.RequestDateFormat),
	)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	version := s.storeVersion()

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res = dto.AvailabilityResponse{
		CheckIn:   checkIn.Format(constant.RequestDateFormat),
		CheckOut:  checkOut.Format(constant.RequestDateFormat),
		Available: true,
		Nights:    pricingModel.NightCount(checkIn, checkOut),
		Total:     s.pricing.Total(checkIn, checkOut),
		Currency:  s.cfg.App.Currency,
	}

	if conflict, found := model.FindConflict(existing, checkIn, checkOut); found {
		res.Available = false
		res.Message = dto.UnavailableMessage(conflict)
	}

	s.saveAvailability(ctx, cacheKey, version, res)

	return res, nil
}

func (s *serviceImpl) storeVersion() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	return s.version
}

// saveAvailability caches res unless a blocking reservation changed after
// version was read.
func (s *serviceImpl) saveAvailability(ctx context.Context, key string, version uint64, res dto.AvailabilityResponse) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.version != version {
		log.Debug().Str("cacheKey", key).Msg("reservations changed, availability not cached")

		return
	}

	if err := s.cache.Save(ctx, key, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save availability to cache")
	}
}

func (s *serviceImpl) availabilityChanged(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.version++
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheAvailability)
}

func (s *serviceImpl) ConfirmPayment(ctx context.Context, outcome paymentModel.Outcome) (confirmed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"payment.method":    string(outcome.Method),
		"payment.reference": outcome.Reference,
		"payment.paid":      outcome.Paid,
	})

	if !outcome.Paid {
		log.Warn().
			Str("method", string(outcome.Method)).
			Str("reference", outcome.Reference).
			Str("message", outcome.Message).
			Msg("payment was not successful")

		return false, nil
	}

	reservation, err := s.repo.GetByPaymentReference(ctx, outcome.Reference)
	if err != nil {
		return false, fmt.Errorf("failed to get reservation by reference: %w", err)
	}

	if reservation.ID == constant.Empty && outcome.BookingID != constant.Empty {
		reservation, err = s.repo.Get(ctx, outcome.BookingID)
		if err != nil {
			return false, fmt.Errorf("failed to get reservation: %w", err)
		}
	}

	if reservation.ID == constant.Empty {
		log.Warn().Str("reference", outcome.Reference).Msg("no reservation matches paid reference")

		return false, nil
	}

	if outcome.Amount > 0 && outcome.Amount < reservation.TotalAmount {
		log.Warn().
			Str("bookingId", reservation.ID).
			Float64("paid", outcome.Amount).
			Float64("total", reservation.TotalAmount).
			Msg("provider reported less than the reservation total")
	}

	transitioned, err := s.repo.UpdatePaymentStatus(ctx, reservation.ID, model.PaymentStatusPending, model.PaymentStatusPaid)
	if err != nil {
		log.Error().Err(err).Str("bookingId", reservation.ID).Msg("failed to mark reservation paid")

		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	if !transitioned {
		current, err := s.repo.Get(ctx, reservation.ID)
		if err != nil {
			return false, fmt.Errorf("failed to get reservation: %w", err)
		}

		log.Info().Str("bookingId", reservation.ID).Str("status", string(current.PaymentStatus)).Msg("payment already applied")

		return current.PaymentStatus == model.PaymentStatusPaid, nil
	}

	reservation.PaymentStatus = model.PaymentStatusPaid

	log.Info().Str("bookingId", reservation.ID).Str("method", string(outcome.Method)).Msg("reservation paid")

	s.availabilityChanged(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notification.PaymentReceipt(c, reservation); err != nil {
			log.Error().Err(err).Str("bookingId", reservation.ID).Msg("failed to send payment receipt")
		}

		if err := s.notification.PaymentReceived(c, reservation); err != nil {
			log.Error().Err(err).Str("bookingId", reservation.ID).Msg("failed to send payment received email")
		}

		s.publish(c, model.EventPaid, reservation)
	}()

	return true, nil
}

func (s *serviceImpl) VerifyPayment(ctx context.Context, method paymentModel.Method, reference string) (confirmed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	outcome, err := s.payment.Verify(ctx, method, reference)
	if err != nil {
		log.Error().Err(err).Str("reference", reference).Msg("failed to verify payment")

		return false, fmt.Errorf("failed to verify payment: %w", err)
	}

	return s.ConfirmPayment(ctx, outcome)
}

func (s *serviceImpl) Reconcile(ctx context.Context, id string) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.BookingID = reservation.ID
	res.PaymentStatus = string(reservation.PaymentStatus)

	if reservation.PaymentStatus != model.PaymentStatusPending {
		res.Confirmed = reservation.PaymentStatus == model.PaymentStatusPaid
		res.Message = "Booking is not awaiting payment"

		return res, nil
	}

	if reservation.ExternalPaymentReference == nil || reservation.PaymentMethod == constant.Empty {
		return res, failure.BadRequestFromString(MessageNothingToConfirm)
	}

	res.Confirmed, err = s.VerifyPayment(ctx, reservation.PaymentMethod, *reservation.ExternalPaymentReference)
	if err != nil {
		return res, err
	}

	if res.Confirmed {
		res.PaymentStatus = string(model.PaymentStatusPaid)
		res.Message = "Payment confirmed"
	} else {
		res.Message = "Payment not completed yet"
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("bookingId", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound(MessageNotFound)
	}

	return reservation, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType model.EventType, reservation model.Reservation) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+string(eventType))
	defer scope.End()

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{
		Key:   reservation.ID,
		Value: model.NewEvent(eventType, reservation, timezone.Now()),
	})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("event", string(eventType)).Str("bookingId", reservation.ID).Msg("failed to publish booking event")
	}
}

func isAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin
}

func initiateFailureMessage(method paymentModel.Method, err error) string {
	if !errors.Is(err, paymentService.ErrNotConfigured) {
		return MessageInitiateFailed
	}

	switch method {
	case paymentModel.MethodMpesa:
		return "M-Pesa configuration is incomplete. Please contact support."
	case paymentModel.MethodPaystack:
		return "Paystack configuration is incomplete. Please contact support."
	default:
		return MessageInitiateFailed
	}
}
