package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	kafkaMocks "villa/infras/kafka/mocks"
	"villa/infras/otel/mocks"
	"villa/internal/domains/booking/repository"
	"villa/internal/domains/booking/service"
	notificationMocks "villa/internal/domains/notification/mocks"
	paymentMocks "villa/internal/domains/payment/mocks"
	paymentModel "villa/internal/domains/payment/model"
	pricingService "villa/internal/domains/pricing/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newLifecycleService wires the real store and price list so state carries
// across calls.
func newLifecycleService(ctrl *gomock.Controller) (service.Booking, *paymentMocks.MockPayment, *notificationMocks.MockNotification, chan string) {
	cfg := newConfig()
	otel := mocks.NewOtel()

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	kafka := kafkaMocks.NewMockClient(ctrl)
	events := recordEvents(kafka)

	payment := paymentMocks.NewMockPayment(ctrl)
	payment.EXPECT().
		Supports(gomock.Any()).
		DoAndReturn(func(method paymentModel.Method) bool {
			return method == paymentModel.MethodMpesa || method == paymentModel.MethodPaystack
		}).
		AnyTimes()

	notification := notificationMocks.NewMockNotification(ctrl)

	svc := service.New(
		repository.New(otel),
		pricingService.New(cfg, cache, otel),
		payment,
		notification,
		kafka,
		cfg,
		cache,
		otel,
	)

	return svc, payment, notification, events
}

func TestBookingLifecycle_PendingDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, payment, notification, events := newLifecycleService(ctrl)

	payment.EXPECT().
		Initiate(gomock.Any(), paymentModel.MethodPaystack, gomock.Any()).
		Return(paymentModel.Artifact{Method: paymentModel.MethodPaystack, Reference: "ref-a"}, nil)
	payment.EXPECT().
		Initiate(gomock.Any(), paymentModel.MethodPaystack, gomock.Any()).
		Return(paymentModel.Artifact{Method: paymentModel.MethodPaystack, Reference: "ref-b"}, nil)
	notification.EXPECT().BookingRequested(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err := svc.Create(context.Background(), bookingRequest("2026-02-10", "2026-02-15", ""))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), bookingRequest("2026-02-12", "2026-02-14", ""))
	require.NoError(t, err, "pending reservations never hold dates")

	assert.Equal(t, []string{"booking.created", "booking.created"}, awaitEvents(t, events, 2))

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 72500.0, list[0].TotalAmount)
	assert.Equal(t, "pending", list[0].PaymentStatus)
	require.NotNil(t, list[0].ExternalPaymentReference)
	assert.Equal(t, "ref-a", *list[0].ExternalPaymentReference)
}

func TestBookingLifecycle_PaidBlocksUntilDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, payment, notification, events := newLifecycleService(ctrl)

	payment.EXPECT().
		Initiate(gomock.Any(), paymentModel.MethodMpesa, gomock.Any()).
		Return(paymentModel.Artifact{Method: paymentModel.MethodMpesa, Reference: "ws_CO_1"}, nil)
	notification.EXPECT().BookingRequested(gomock.Any(), gomock.Any()).Return(nil)

	created, err := svc.Create(context.Background(), bookingRequest("2026-02-10", "2026-02-15", "mpesa"))
	require.NoError(t, err)

	// Duplicate and concurrent callbacks: exactly one receipt pair goes out.
	notification.EXPECT().PaymentReceipt(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	notification.EXPECT().PaymentReceived(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	outcome := paymentModel.Outcome{Method: paymentModel.MethodMpesa, Reference: "ws_CO_1", Paid: true}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			confirmed, err := svc.ConfirmPayment(context.Background(), outcome)
			assert.NoError(t, err)
			assert.True(t, confirmed)
		}()
	}

	wg.Wait()
	assert.ElementsMatch(t, []string{"booking.created", "booking.paid"}, awaitEvents(t, events, 2))

	got, err := svc.Get(context.Background(), created.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.PaymentStatus)

	_, err = svc.Create(context.Background(), bookingRequest("2026-02-14", "2026-02-20", ""))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.EqualError(t, err, "Dates unavailable. The property is already booked from Feb 10, 2026 to Feb 15, 2026.")

	// Touching ranges do not conflict.
	payment.EXPECT().
		Initiate(gomock.Any(), paymentModel.MethodPaystack, gomock.Any()).
		Return(paymentModel.Artifact{Method: paymentModel.MethodPaystack, Reference: "ref-c"}, nil)
	notification.EXPECT().BookingRequested(gomock.Any(), gomock.Any()).Return(nil)

	_, err = svc.Create(context.Background(), bookingRequest("2026-02-15", "2026-02-20", ""))
	require.NoError(t, err)

	_, err = svc.Delete(adminContext(), created.BookingID)
	require.NoError(t, err)

	_, err = svc.Delete(adminContext(), created.BookingID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	assert.ElementsMatch(t, []string{"booking.created", "booking.deleted"}, awaitEvents(t, events, 2))
}

func TestBookingLifecycle_AdminBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Initiate and no email expectations: the admin path must not touch either.
	svc, _, _, events := newLifecycleService(ctrl)

	blocked, err := svc.Create(adminContext(), bookingRequest("2026-12-20", "2026-12-27", ""))
	require.NoError(t, err)
	assert.Equal(t, service.MessageBlocked, blocked.Message)
	assert.Empty(t, blocked.PaymentURL)

	_, err = svc.Create(adminContext(), bookingRequest("2026-12-24", "2026-12-26", ""))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	first, err := svc.GetAll(context.Background())
	require.NoError(t, err)

	second, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "blocked", first[0].PaymentStatus)
	assert.Equal(t, 175000.0, first[0].TotalAmount)

	_, err = svc.Delete(adminContext(), blocked.BookingID)
	require.NoError(t, err)

	again, err := svc.Create(adminContext(), bookingRequest("2026-12-24", "2026-12-26", ""))
	require.NoError(t, err, "deleting a block frees the dates")
	assert.NotEqual(t, blocked.BookingID, again.BookingID)

	assert.ElementsMatch(t, []string{"booking.blocked", "booking.deleted", "booking.blocked"}, awaitEvents(t, events, 3))
}

func TestBookingLifecycle_PaymentMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, events := newLifecycleService(ctrl)

	// Operators record offline payments however they were made.
	blocked, err := svc.Create(adminContext(), bookingRequest("2026-03-10", "2026-03-12", "cash"))
	require.NoError(t, err)
	assert.Equal(t, service.MessageBlocked, blocked.Message)

	got, err := svc.Get(context.Background(), blocked.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "blocked", got.PaymentStatus)
	assert.Empty(t, got.PaymentMethod)

	_, err = svc.Create(context.Background(), bookingRequest("2026-03-20", "2026-03-22", "cash"))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.EqualError(t, err, service.MessageUnsupported)

	_, err = svc.Create(adminContext(), bookingRequest("0001-01-01", "9999-12-31", ""))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	list, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Equal(t, []string{"booking.blocked"}, awaitEvents(t, events, 1))
}
