package toll

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
)

// DateClassifier decides whether a date is entirely toll-free.
type DateClassifier interface {
	IsTollFreeDate(ctx context.Context, t time.Time) bool
}

// FeeResolver maps a timestamp to its tariff fee. The second return value is
// false when the timestamp falls in an untariffed period.
type FeeResolver interface {
	Resolve(t time.Time) (int64, bool)
}

// Calculator computes per-day toll totals for a vehicle's crossings.
type Calculator struct {
	classifier DateClassifier
	tariff     FeeResolver
	loc        *time.Location
	window     time.Duration
	dailyCap   int64
}

// NewCalculator creates a toll calculator. loc is the toll zone's local
// timezone, used for calendar-day grouping.
func NewCalculator(classifier DateClassifier, tariff FeeResolver, loc *time.Location, window time.Duration, dailyCapSek int64) *Calculator {
	return &Calculator{
		classifier: classifier,
		tariff:     tariff,
		loc:        loc,
		window:     window,
		dailyCap:   dailyCapSek,
	}
}

// ComputeDailyTolls resolves a vehicle's crossing timestamps into capped
// per-day toll totals, sorted ascending by date.
//
// An exempt vehicle yields an empty result without consulting the calendar or
// the tariff table. An empty timestamp list returns ErrNoTollTimes. Input that
// filters down to nothing (all crossings on toll-free dates or outside toll
// hours) is a valid empty result, not an error.
func (c *Calculator) ComputeDailyTolls(ctx context.Context, vehicle VehicleClass, tollTimes []time.Time) ([]DailyTotal, error) {
	if IsTollFreeVehicle(vehicle) {
		log.Printf("vehicle type %s is toll-free", vehicle)
		return []DailyTotal{}, nil
	}

	if len(tollTimes) == 0 {
		return nil, ErrNoTollTimes
	}

	ordered := make([]time.Time, len(tollTimes))
	copy(ordered, tollTimes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	eligible := c.filterEligible(ctx, ordered)
	if len(eligible) == 0 {
		log.Printf("no eligible toll times remain after filtering %d input times", len(tollTimes))
		return []DailyTotal{}, nil
	}

	byDay, dayKeys := c.groupByDay(eligible)

	totals := make([]DailyTotal, 0, len(dayKeys))
	for _, day := range dayKeys {
		events, err := c.resolveFees(byDay[day])
		if err != nil {
			return nil, err
		}

		windowFees := aggregateWindows(events, c.window)
		totals = append(totals, DailyTotal{
			Date:   day,
			FeeSek: capDaily(windowFees, c.dailyCap),
		})
	}

	if len(totals) == 0 {
		return nil, ErrNoTollsFound
	}
	return totals, nil
}

// filterEligible drops timestamps on toll-free calendar dates and timestamps
// outside tariffed hours, preserving order and duplicates.
func (c *Calculator) filterEligible(ctx context.Context, tollTimes []time.Time) []time.Time {
	var eligible []time.Time
	for _, t := range tollTimes {
		if c.classifier.IsTollFreeDate(ctx, t.In(c.loc)) {
			continue
		}
		if _, ok := c.tariff.Resolve(t); !ok {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

// groupByDay buckets sorted timestamps by their local calendar date. The
// returned keys preserve the input's ascending order, so each bucket is
// itself sorted.
func (c *Calculator) groupByDay(ordered []time.Time) (map[time.Time][]time.Time, []time.Time) {
	byDay := make(map[time.Time][]time.Time)
	var dayKeys []time.Time
	for _, t := range ordered {
		day := c.dateOf(t)
		if _, seen := byDay[day]; !seen {
			dayKeys = append(dayKeys, day)
		}
		byDay[day] = append(byDay[day], t)
	}
	return byDay, dayKeys
}

// resolveFees turns one day's timestamps into tariffed crossing events. A
// timestamp with no tariff rule at this stage slipped past the eligibility
// filter; that is an internal inconsistency and aborts the calculation.
func (c *Calculator) resolveFees(tollTimes []time.Time) ([]CrossingEvent, error) {
	events := make([]CrossingEvent, 0, len(tollTimes))
	for _, t := range tollTimes {
		fee, ok := c.tariff.Resolve(t)
		if !ok {
			return nil, fmt.Errorf("no tariff rule found for eligible toll time %s", t.In(c.loc).Format(time.RFC3339))
		}
		events = append(events, CrossingEvent{Time: t, FeeSek: fee})
	}
	return events, nil
}

// dateOf normalizes a timestamp to midnight of its local calendar date.
func (c *Calculator) dateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}
