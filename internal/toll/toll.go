package toll

import (
	"errors"
	"time"
)

// ErrNoTollTimes is returned when a calculation is requested without any
// crossing timestamps at all.
var ErrNoTollTimes = errors.New("no toll times provided")

// ErrNoTollsFound is returned when the input produced no chargeable daily
// totals. It is an expected outcome, not a fault.
var ErrNoTollsFound = errors.New("no toll fees found for the provided times")

// CrossingEvent is a single toll-point passage that has been resolved against
// the tariff table. Events are transient; they exist only for the duration of
// one calculation.
type CrossingEvent struct {
	Time   time.Time
	FeeSek int64
}

// DailyTotal is the capped toll charge for one local calendar day. Date is
// normalized to midnight in the toll zone's timezone.
type DailyTotal struct {
	Date   time.Time
	FeeSek int64
}
