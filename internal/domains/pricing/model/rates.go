package model

import (
	"errors"
	"fmt"
	"time"
)

// Rates are nightly prices per tier. A zero Christmas rate means the tier is
// not priced separately and falls back to Low.
type Rates struct {
	Low       float64
	Mid       float64
	Peak      float64
	Christmas float64
}

// Line groups the nights of a stay that share a tier.
type Line struct {
	Tier     Tier
	Nights   int
	Price    float64
	Subtotal float64
}

// Price returns the nightly rate for tier.
func (r Rates) Price(tier Tier) float64 {
	switch tier {
	case TierMid:
		return r.Mid
	case TierPeak:
		return r.Peak
	case TierChristmas:
		if r.Christmas > 0 {
			return r.Christmas
		}

		return r.Low
	default:
		return r.Low
	}
}

var (
	ErrStayOrder   = errors.New("checkOut must be after checkIn")
	ErrStayTooLong = errors.New("stay is too long")
)

const secondsPerDay = 24 * 60 * 60

// NightCount is the number of nights in [checkIn, checkOut), 0 for empty or
// inverted ranges. It works on calendar days, so it is safe for any year.
func NightCount(checkIn, checkOut time.Time) int {
	days := (calendarDate(checkOut).Unix() - calendarDate(checkIn).Unix()) / secondsPerDay
	if days <= 0 {
		return 0
	}

	return int(days)
}

// CheckStay rejects inverted stays and, when maxNights is positive, stays
// longer than maxNights.
func CheckStay(checkIn, checkOut time.Time, maxNights int) error {
	nights := NightCount(checkIn, checkOut)
	if nights == 0 {
		return ErrStayOrder
	}

	if maxNights > 0 && nights > maxNights {
		return fmt.Errorf("%w: at most %d nights can be booked", ErrStayTooLong, maxNights)
	}

	return nil
}

// EachNight calls fn with the calendar date of every night in [checkIn, checkOut).
func EachNight(checkIn, checkOut time.Time, fn func(night time.Time)) {
	end := calendarDate(checkOut)

	for night := calendarDate(checkIn); night.Before(end); night = night.AddDate(0, 0, 1) {
		fn(night)
	}
}

// Total sums the tier price of each night. Empty or inverted ranges cost 0.
func (r Rates) Total(checkIn, checkOut time.Time) float64 {
	var total float64

	EachNight(checkIn, checkOut, func(night time.Time) {
		total += r.Price(Classify(night))
	})

	return total
}

// Breakdown groups the nights by tier in the order each tier first appears.
func (r Rates) Breakdown(checkIn, checkOut time.Time) []Line {
	var lines []Line

	index := make(map[Tier]int)

	EachNight(checkIn, checkOut, func(night time.Time) {
		tier := Classify(night)
		price := r.Price(tier)

		i, ok := index[tier]
		if !ok {
			index[tier] = len(lines)
			lines = append(lines, Line{Tier: tier, Price: price})
			i = len(lines) - 1
		}

		lines[i].Nights++
		lines[i].Subtotal += price
	})

	return lines
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
