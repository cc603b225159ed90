// Package calendar decides whether a calendar date is entirely toll-free.
package calendar

import (
	"context"
	"log"
	"time"
)

// HolidayOracle answers whether a given date is a public holiday.
type HolidayOracle interface {
	IsPublicHoliday(ctx context.Context, date time.Time) (bool, error)
}

// Classifier applies the calendar exemption rules: the toll-free month,
// weekends, public holidays and the day before a public holiday.
type Classifier struct {
	oracle        HolidayOracle
	tollFreeMonth time.Month
}

// NewClassifier creates a classifier backed by the given holiday oracle.
func NewClassifier(oracle HolidayOracle, tollFreeMonth time.Month) *Classifier {
	return &Classifier{
		oracle:        oracle,
		tollFreeMonth: tollFreeMonth,
	}
}

// IsTollFreeDate reports whether t's calendar date carries no toll at any
// time of day. A date is exempt when it falls in the toll-free month, on a
// Saturday, on a Sunday or public holiday, or on the day before a Sunday or
// public holiday.
func (c *Classifier) IsTollFreeDate(ctx context.Context, t time.Time) bool {
	if t.Month() == c.tollFreeMonth {
		return true
	}
	if t.Weekday() == time.Saturday {
		return true
	}
	if c.isHolidayOrSunday(ctx, t) {
		return true
	}
	return c.isHolidayOrSunday(ctx, t.AddDate(0, 0, 1))
}

// isHolidayOrSunday treats an oracle failure as "not a holiday": toll
// charging must keep working through a holiday-service outage, so the lookup
// fails open to chargeable.
func (c *Classifier) isHolidayOrSunday(ctx context.Context, date time.Time) bool {
	if date.Weekday() == time.Sunday {
		return true
	}

	isHoliday, err := c.oracle.IsPublicHoliday(ctx, date)
	if err != nil {
		log.Printf("failed to check holidays for %s, treating as non-holiday: %v", date.Format("2006-01-02"), err)
		return false
	}
	return isHoliday
}
