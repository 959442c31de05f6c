package model_test

import (
	"testing"
	"time"
	"villa/internal/domains/pricing/model"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{year: 2024, want: date(2024, time.March, 31)},
		{year: 2025, want: date(2025, time.April, 20)},
		{year: 2026, want: date(2026, time.April, 5)},
		{year: 2027, want: date(2027, time.March, 28)},
		{year: 2000, want: date(2000, time.April, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.want.Format("2006"), func(t *testing.T) {
			assert.Equal(t, tt.want, model.EasterSunday(tt.year))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want model.Tier
	}{
		{name: "christmas starts Dec 20", date: date(2026, time.December, 20), want: model.TierChristmas},
		{name: "christmas on Dec 31", date: date(2026, time.December, 31), want: model.TierChristmas},
		{name: "christmas ends Jan 5", date: date(2027, time.January, 5), want: model.TierChristmas},
		{name: "Jan 6 falls back to low", date: date(2027, time.January, 6), want: model.TierLow},
		{name: "peak from Jul 15", date: date(2026, time.July, 15), want: model.TierPeak},
		{name: "peak in August", date: date(2026, time.August, 31), want: model.TierPeak},
		{name: "peak Dec 15", date: date(2026, time.December, 15), want: model.TierPeak},
		{name: "peak Dec 19", date: date(2026, time.December, 19), want: model.TierPeak},
		{name: "good friday", date: date(2026, time.April, 3), want: model.TierPeak},
		{name: "easter monday", date: date(2026, time.April, 6), want: model.TierPeak},
		{name: "day after easter monday", date: date(2026, time.April, 7), want: model.TierLow},
		{name: "thursday before good friday", date: date(2026, time.April, 2), want: model.TierLow},
		{name: "easter in march", date: date(2024, time.March, 29), want: model.TierPeak},
		{name: "low in March", date: date(2026, time.March, 10), want: model.TierLow},
		{name: "low in May", date: date(2026, time.May, 31), want: model.TierLow},
		{name: "low in October", date: date(2026, time.October, 1), want: model.TierLow},
		{name: "low in November", date: date(2026, time.November, 30), want: model.TierLow},
		{name: "mid in February", date: date(2026, time.February, 10), want: model.TierMid},
		{name: "mid in June", date: date(2026, time.June, 1), want: model.TierMid},
		{name: "mid in September", date: date(2026, time.September, 30), want: model.TierMid},
		{name: "mid Jul 14", date: date(2026, time.July, 14), want: model.TierMid},
		{name: "mid Dec 14", date: date(2026, time.December, 14), want: model.TierMid},
		{name: "time of day ignored", date: time.Date(2026, time.December, 20, 23, 59, 0, 0, time.UTC), want: model.TierChristmas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Classify(tt.date))
		})
	}
}

func TestTier_Label(t *testing.T) {
	assert.Equal(t, "Low Season", model.TierLow.Label())
	assert.Equal(t, "Mid Season", model.TierMid.Label())
	assert.Equal(t, "Peak Season", model.TierPeak.Label())
	assert.Equal(t, "Christmas Season", model.TierChristmas.Label())
}
