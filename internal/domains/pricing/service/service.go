package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/pricing/model"
	"villa/internal/domains/pricing/model/dto"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheQuote = "pricing:quote"
)

type Pricing interface {
	Total(checkIn, checkOut time.Time) float64
	Quote(ctx context.Context, checkIn, checkOut time.Time) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	rates model.Rates
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Pricing {
	return &serviceImpl{
		rates: model.Rates{
			Low:       cfg.Pricing.Low,
			Mid:       cfg.Pricing.Mid,
			Peak:      cfg.Pricing.Peak,
			Christmas: cfg.Pricing.Christmas,
		},
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Total is the server-side price of a stay.
func (s *serviceImpl) Total(checkIn, checkOut time.Time) float64 {
	return s.rates.Total(checkIn, checkOut)
}

func (s *serviceImpl) Quote(ctx context.Context, checkIn, checkOut time.Time) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.CheckStay(checkIn, checkOut, s.cfg.Pricing.MaxNights); err != nil {
		return res, failure.BadRequest(err)
	}

	cacheKey := shared.BuildCacheKey(cacheQuote,
		checkIn.Format(constant.RequestDateFormat),
		checkOut.Format(constant.RequestDateFormat),
	)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for quote")

		return res, nil
	}

	res.FromModel(checkIn, checkOut, s.cfg.App.Currency, s.rates.Breakdown(checkIn, checkOut))

	scope.SetAttributes(map[string]any{
		"quote.nights": res.Nights,
		"quote.total":  res.Total,
	})

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save quote to cache")
	}

	return res, nil
}
