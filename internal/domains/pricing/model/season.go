package model

import (
	"time"
)

// Tier is the pricing season a night falls in.
type Tier string

const (
	TierLow       Tier = "low"
	TierMid       Tier = "mid"
	TierPeak      Tier = "peak"
	TierChristmas Tier = "christmas"
)

// Label is the display name, e.g. "Christmas Season".
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low Season"
	case TierMid:
		return "Mid Season"
	case TierPeak:
		return "Peak Season"
	case TierChristmas:
		return "Christmas Season"
	default:
		return string(t)
	}
}

// EasterSunday returns Easter Sunday of year (anonymous Gregorian computus)
// as midnight UTC.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// isEaster reports whether date lies between Good Friday and Easter Monday inclusive.
func isEaster(date time.Time) bool {
	easter := EasterSunday(date.Year())
	goodFriday := easter.AddDate(0, 0, -2)
	easterMonday := easter.AddDate(0, 0, 1)

	return !date.Before(goodFriday) && !date.After(easterMonday)
}

// Classify returns the tier of the calendar date of date. Rules are checked
// in order and the first match wins:
//
//	christmas  Dec 20 - Jan 5
//	peak       Jul 15 - Aug 31, Dec 15 - Dec 19, Good Friday - Easter Monday
//	low        Mar, Apr, May, Oct, Nov
//	mid        Feb, Jun, Sep, Jul 1 - 14, Dec 1 - 14
func Classify(date time.Time) Tier {
	year, month, day := date.Date()
	date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	switch {
	case month == time.December && day >= 20, month == time.January && day <= 5:
		return TierChristmas
	case month == time.July && day >= 15, month == time.August:
		return TierPeak
	case month == time.December && day >= 15:
		return TierPeak
	case isEaster(date):
		return TierPeak
	}

	switch month {
	case time.March, time.April, time.May, time.October, time.November:
		return TierLow
	case time.February, time.June, time.September, time.July, time.December:
		return TierMid
	default:
		return TierLow
	}
}
