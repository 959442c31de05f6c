package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"villa/shared/constant"
	"villa/shared/timezone"
)

// StayQuery is a date range read from the query string, as used by the
// read-only availability and quote endpoints.
type StayQuery struct {
	CheckIn  string `json:"check_in"  validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

// FromRequest populates StayQuery from the HTTP request.
// Example:
//
//	q := dto.StayQuery{}
//	q.FromRequest(req)
//
// Missing parameters are left empty so that validation can report them.
func (q *StayQuery) FromRequest(r *http.Request) {
	queryParams := r.URL.Query()

	q.CheckIn = strings.TrimSpace(queryParams.Get(constant.RequestParamCheckIn))
	q.CheckOut = strings.TrimSpace(queryParams.Get(constant.RequestParamCheckOut))
}

// Stay parses both ends of the range as calendar days in the app timezone.
func (q *StayQuery) Stay() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(constant.RequestDateFormat, q.CheckIn)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_in: %w", err)
	}

	checkOut, err = timezone.ParseDate(constant.RequestDateFormat, q.CheckOut)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_out: %w", err)
	}

	return checkIn, checkOut, nil
}
