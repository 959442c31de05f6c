package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"villa/config"
	"villa/infras/mpesa"
	"villa/infras/otel"
	"villa/internal/domains/payment/model"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheMobileMoneyToken = "payment:mpesa:token"

	// tokenExpiryMargin keeps a cached token from being used in its last minute.
	tokenExpiryMargin = 60

	accountReferenceLength = 4
	countryCallingCode     = "254"
)

type mobileMoney struct {
	cfg    *config.Config
	cache  cache.RedisCache
	client mpesa.Client
	otel   otel.Otel
}

// NewMobileMoney is the M-Pesa STK push gateway.
func NewMobileMoney(cfg *config.Config, cache cache.RedisCache, client mpesa.Client, otel otel.Otel) Gateway {
	return &mobileMoney{
		cfg:    cfg,
		cache:  cache,
		client: client,
		otel:   otel,
	}
}

func (g *mobileMoney) Method() model.Method {
	return model.MethodMpesa
}

func (g *mobileMoney) Initiate(ctx context.Context, charge model.Charge) (res model.Artifact, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.mpesa.Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = g.configured(); err != nil {
		return res, err
	}

	token, err := g.token(ctx)
	if err != nil {
		return res, err
	}

	phone := NormalizePhone(charge.Phone)
	shortcode := g.cfg.Payment.Mpesa.Shortcode
	timestamp := timezone.Now().Format(mpesa.TimestampFormat)

	resp, err := g.client.STKPush(ctx, token, mpesa.STKPushRequest{
		BusinessShortCode: shortcode,
		Password:          mpesa.Password(shortcode, g.cfg.Payment.Mpesa.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   mpesa.TransactionTypePayBill,
		Amount:            int64(math.Round(charge.Amount)),
		PartyA:            phone,
		PartyB:            shortcode,
		PhoneNumber:       phone,
		CallBackURL:       g.cfg.Payment.Mpesa.CallbackURL,
		AccountReference:  AccountReference(charge.BookingID),
		TransactionDesc:   "Booking for " + charge.Name,
	})
	if err != nil {
		return res, err
	}

	if !resp.ResponseCode.OK() {
		log.Warn().
			Str("bookingId", charge.BookingID).
			Str("phone", shared.MaskPhone(phone)).
			Str("responseCode", string(resp.ResponseCode)).
			Msg("stk push rejected")

		return res, fmt.Errorf("stk push rejected: %s", resp.ResponseDescription)
	}

	log.Info().
		Str("bookingId", charge.BookingID).
		Str("phone", shared.MaskPhone(phone)).
		Str("checkoutRequestId", resp.CheckoutRequestID).
		Msg("stk push sent")

	return model.Artifact{
		Method:    model.MethodMpesa,
		Reference: resp.CheckoutRequestID,
		Instructions: fmt.Sprintf(
			"A payment request has been sent to %s. Please enter your M-Pesa PIN on your phone to complete the payment.",
			phone,
		),
	}, nil
}

func (g *mobileMoney) Verify(ctx context.Context, reference string) (res model.Outcome, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.mpesa.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = g.configured(); err != nil {
		return res, err
	}

	token, err := g.token(ctx)
	if err != nil {
		return res, err
	}

	shortcode := g.cfg.Payment.Mpesa.Shortcode
	timestamp := timezone.Now().Format(mpesa.TimestampFormat)

	resp, err := g.client.STKQuery(ctx, token, mpesa.STKQueryRequest{
		BusinessShortCode: shortcode,
		Password:          mpesa.Password(shortcode, g.cfg.Payment.Mpesa.Passkey, timestamp),
		Timestamp:         timestamp,
		CheckoutRequestID: reference,
	})
	if err != nil {
		return res, err
	}

	return model.Outcome{
		Method:    model.MethodMpesa,
		Reference: reference,
		Paid:      resp.ResultCode.OK(),
		Message:   resp.ResultDesc,
	}, nil
}

func (g *mobileMoney) configured() error {
	m := g.cfg.Payment.Mpesa
	if m.ConsumerKey == "" || m.ConsumerSecret == "" || m.Shortcode == "" || m.Passkey == "" || m.CallbackURL == "" {
		return fmt.Errorf("mpesa: %w", ErrNotConfigured)
	}

	return nil
}

// token returns a Daraja access token, reusing a cached one while it is valid.
func (g *mobileMoney) token(ctx context.Context) (string, error) {
	var cached string

	err := g.cache.Get(ctx, cacheMobileMoneyToken, &cached)
	if err == nil && cached != "" {
		return cached, nil
	}

	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Msg("failed to read mpesa token from cache")
	}

	token, err := g.client.Token(ctx)
	if err != nil {
		return "", err
	}

	if ttl := token.TTL() - tokenExpiryMargin; ttl > 0 {
		if err := g.cache.Save(ctx, cacheMobileMoneyToken, token.Token, ttl); err != nil {
			log.Warn().Err(err).Msg("failed to cache mpesa token")
		}
	}

	return token.Token, nil
}

// NormalizePhone rewrites a Kenyan number to the 2547XXXXXXXX form Daraja expects.
func NormalizePhone(phone string) string {
	var b strings.Builder

	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	digits := b.String()

	switch {
	case strings.HasPrefix(digits, countryCallingCode):
		return digits
	case strings.HasPrefix(digits, "0"):
		return countryCallingCode + digits[1:]
	default:
		return countryCallingCode + digits
	}
}

// AccountReference is the short code shown on the guest's STK prompt.
func AccountReference(bookingID string) string {
	var b strings.Builder

	for _, r := range bookingID {
		if b.Len() == accountReferenceLength {
			break
		}

		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}

	return strings.ToUpper(b.String())
}
