package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	"villa/config"
	"villa/infras/otel/mocks"
	"villa/internal/domains/pricing/model/dto"
	"villa/internal/domains/pricing/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Currency = "KES"
	cfg.Cache.TTL = 300
	cfg.Pricing.Low = 12000
	cfg.Pricing.Mid = 14500
	cfg.Pricing.Peak = 22000
	cfg.Pricing.Christmas = 25000
	cfg.Pricing.MaxNights = 90

	return cfg
}

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPricingService_Total(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(newConfig(), cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	assert.InDelta(t, 26500, svc.Total(day(time.January, 31), day(time.February, 2)), 0.001)
	assert.Zero(t, svc.Total(day(time.February, 2), day(time.February, 2)))
}

func TestPricingService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	svc := service.New(newConfig(), mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		setupMock func()
		wantCode  int
		wantMsg   string
		wantTotal float64
	}{
		{
			name:     "cache miss computes quote",
			checkIn:  day(time.January, 31),
			checkOut: day(time.February, 2),
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), "pricing:quote:2026-01-31:2026-02-02", gomock.Any()).
					Return(errors.New("cache miss"))

				mockCache.EXPECT().
					Save(gomock.Any(), "pricing:quote:2026-01-31:2026-02-02", gomock.Any(), 300).
					Return(nil)
			},
			wantTotal: 26500,
		},
		{
			name:     "cache hit",
			checkIn:  day(time.March, 1),
			checkOut: day(time.March, 2),
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), "pricing:quote:2026-03-01:2026-03-02", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.QuoteResponse)
						res.Total = 99

						return nil
					})
			},
			wantTotal: 99,
		},
		{
			name:      "checkout before checkin",
			checkIn:   day(time.March, 2),
			checkOut:  day(time.March, 1),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "stay longer than the cap",
			checkIn:   time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
			checkOut:  time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "stay is too long: at most 90 nights can be booked",
		},
		{
			name:     "cache write failure still returns the quote",
			checkIn:  day(time.April, 1),
			checkOut: day(time.April, 3),
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockCache.EXPECT().Save(gomock.Any(), "pricing:quote:2026-04-01:2026-04-03", gomock.Any(), 300).Return(errors.New("redis down"))
			},
			wantTotal: 24000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Quote(context.Background(), tt.checkIn, tt.checkOut)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, res.Total, 0.001)
		})
	}
}
