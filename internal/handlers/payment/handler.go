package payment

import (
	"net/http"
	"villa/infras/otel"
	bookingService "villa/internal/domains/booking/service"
	"villa/internal/domains/payment/model"
	"villa/internal/domains/payment/model/dto"
	"villa/shared/constant"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	TextMissingReference   = "Missing payment reference."
	TextInvalidReference   = "Invalid payment reference."
	TextPaymentSuccessful  = "Payment successful! Your booking is confirmed."
	TextVerificationFailed = "Payment verification failed or booking not found."
	TextVerificationError  = "Error verifying payment."

	referenceRule = "printascii,max=100"
)

// Handler receives payment provider callbacks. Providers only learn whether
// the callback was received; the booking outcome is never reported back.
type Handler struct {
	booking bookingService.Booking
	otel    otel.Otel
}

func New(booking bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		booking: booking,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/mobile-money/callback", handler.MobileMoneyCallback)
		r.Get("/hosted-card/callback", handler.HostedCardCallback)
	})
}

// MobileMoneyCallback handles the M-Pesa STK push result.
// @Summary M-Pesa STK push callback
// @Description Always acknowledged with ResultCode 0, whatever the payment outcome.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.MobileMoneyCallbackRequest true "Daraja callback"
// @Success 200 {object} dto.MobileMoneyCallbackResponse
// @Router /payments/mobile-money/callback [post]
func (handler *Handler) MobileMoneyCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MobileMoneyCallback")
	defer scope.End()

	defer response.WithJSON(w, http.StatusOK, dto.NewMobileMoneyAck())

	req := dto.MobileMoneyCallbackRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode mpesa callback")

		return
	}

	outcome, ok := req.ToOutcome()
	if !ok {
		log.Warn().Msg("mpesa callback without stkCallback ignored")

		return
	}

	scope.SetAttributes(map[string]any{
		"payment.reference": outcome.Reference,
		"payment.paid":      outcome.Paid,
	})

	if !outcome.Paid {
		log.Info().
			Str("checkoutRequestId", outcome.Reference).
			Str("resultDesc", outcome.Message).
			Msg("mpesa payment was not completed")

		return
	}

	confirmed, err := handler.booking.ConfirmPayment(ctx, outcome)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("checkoutRequestId", outcome.Reference).Msg("failed to confirm mpesa payment")

		return
	}

	if !confirmed {
		log.Warn().Str("checkoutRequestId", outcome.Reference).Msg("mpesa payment did not match a pending booking")
	}
}

// HostedCardCallback handles the browser redirect back from Paystack.
// @Summary Paystack callback
// @Description Verifies the transaction with Paystack and confirms the booking.
// @Tags Payment
// @Produce plain
// @Param reference query string true "Paystack transaction reference"
// @Success 200 {string} string "Payment successful! Your booking is confirmed."
// @Failure 400 {string} string "Missing payment reference."
// @Failure 500 {string} string "Error verifying payment."
// @Router /payments/hosted-card/callback [get]
func (handler *Handler) HostedCardCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HostedCardCallback")
	defer scope.End()

	reference := r.URL.Query().Get(constant.RequestParamReference)
	if reference == constant.Empty {
		response.WithText(w, http.StatusBadRequest, TextMissingReference)

		return
	}

	if err := validator.ValidateVar(reference, referenceRule); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected malformed paystack reference")

		response.WithText(w, http.StatusBadRequest, TextInvalidReference)

		return
	}

	scope.SetAttribute("payment.reference", reference)

	confirmed, err := handler.booking.VerifyPayment(ctx, model.MethodPaystack, reference)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reference", reference).Msg("failed to verify paystack payment")

		response.WithText(w, http.StatusInternalServerError, TextVerificationError)

		return
	}

	if !confirmed {
		response.WithText(w, http.StatusOK, TextVerificationFailed)

		return
	}

	response.WithText(w, http.StatusOK, TextPaymentSuccessful)
}
