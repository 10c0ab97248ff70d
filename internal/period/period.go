// Package period scopes incomes, bill payments and balance reads to a
// calendar (month, year) pair. Months are 1-based (1 = January).
package period

import (
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
)

type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Parse validates raw month/year query or body values.
func Parse(rawMonth, rawYear string) (Period, error) {
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return Period{}, errors.New("month must be a number between 1 and 12")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return Period{}, errors.New("year must be a number")
	}
	return New(month, year)
}

func New(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, errors.New("month must be between 1 and 12")
	}
	if year < 1900 || year > 2200 {
		return Period{}, errors.New("year out of range")
	}
	return Period{Month: month, Year: year}, nil
}

// Contains reports whether t falls inside the period, compared in UTC.
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return int(t.Month()) == p.Month && t.Year() == p.Year
}

// Bounds returns the UTC start of the month and the start of the next month.
func (p Period) Bounds() (time.Time, time.Time) {
	anchor := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	n := now.New(anchor)
	return n.BeginningOfMonth(), n.EndOfMonth().Add(time.Nanosecond)
}

// SameMonth reports whether two instants share a calendar month, in UTC.
func SameMonth(a, b time.Time) bool {
	return now.New(a.UTC()).BeginningOfMonth().Equal(now.New(b.UTC()).BeginningOfMonth())
}

func (p Period) String() string {
	return strconv.Itoa(p.Year) + "-" + twoDigits(p.Month)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
