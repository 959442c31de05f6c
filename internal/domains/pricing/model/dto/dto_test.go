package dto_test

import (
	"testing"
	"time"
	"villa/internal/domains/pricing/model"
	"villa/internal/domains/pricing/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestQuoteResponse_FromModel(t *testing.T) {
	var res dto.QuoteResponse

	res.FromModel(
		time.Date(2026, time.December, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 22, 0, 0, 0, 0, time.UTC),
		"KES",
		[]model.Line{
			{Tier: model.TierPeak, Nights: 1, Price: 22000, Subtotal: 22000},
			{Tier: model.TierChristmas, Nights: 2, Price: 25000, Subtotal: 50000},
		},
	)

	assert.Equal(t, "2026-12-19", res.CheckIn)
	assert.Equal(t, "2026-12-22", res.CheckOut)
	assert.Equal(t, 3, res.Nights)
	assert.InDelta(t, 72000, res.Total, 0.001)
	assert.Equal(t, "1 night × KES 22000 (Peak Season)", res.Breakdown[0].Description)
	assert.Equal(t, "2 nights × KES 25000 (Christmas Season)", res.Breakdown[1].Description)
}

func TestQuoteResponse_FromModel_Empty(t *testing.T) {
	var res dto.QuoteResponse

	day := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	res.FromModel(day, day, "KES", nil)

	assert.Zero(t, res.Nights)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Breakdown)
}
