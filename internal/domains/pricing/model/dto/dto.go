package dto

import (
	"fmt"
	"strconv"
	"time"
	"villa/internal/domains/pricing/model"
	"villa/shared/constant"
)

type QuoteLine struct {
	Season        string  `json:"season"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	Subtotal      float64 `json:"subtotal"`
	Description   string  `json:"description"`
}

type QuoteResponse struct {
	CheckIn   string      `json:"checkIn"`
	CheckOut  string      `json:"checkOut"`
	Nights    int         `json:"nights"`
	Currency  string      `json:"currency"`
	Total     float64     `json:"total"`
	Breakdown []QuoteLine `json:"breakdown"`
}

func (r *QuoteResponse) FromModel(checkIn, checkOut time.Time, currency string, lines []model.Line) {
	r.CheckIn = checkIn.Format(constant.RequestDateFormat)
	r.CheckOut = checkOut.Format(constant.RequestDateFormat)
	r.Currency = currency
	r.Breakdown = make([]QuoteLine, 0, len(lines))

	for _, line := range lines {
		r.Nights += line.Nights
		r.Total += line.Subtotal

		r.Breakdown = append(r.Breakdown, QuoteLine{
			Season:        string(line.Tier),
			Nights:        line.Nights,
			PricePerNight: line.Price,
			Subtotal:      line.Subtotal,
			Description:   describe(line, currency),
		})
	}
}

// describe renders "2 nights × KES 14500 (Mid Season)".
func describe(line model.Line, currency string) string {
	unit := "nights"
	if line.Nights == 1 {
		unit = "night"
	}

	return fmt.Sprintf("%d %s × %s %s (%s)",
		line.Nights, unit, currency, strconv.FormatFloat(line.Price, 'f', -1, 64), line.Tier.Label())
}
