package toll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier marks dates toll-free according to a predicate and counts
// how often it was consulted.
type stubClassifier struct {
	tollFree func(t time.Time) bool
	calls    int
}

func (s *stubClassifier) IsTollFreeDate(_ context.Context, t time.Time) bool {
	s.calls++
	if s.tollFree == nil {
		return false
	}
	return s.tollFree(t)
}

// stubResolver resolves fees via a function and counts calls.
type stubResolver struct {
	resolve func(t time.Time) (int64, bool)
	calls   int
}

func (s *stubResolver) Resolve(t time.Time) (int64, bool) {
	s.calls++
	if s.resolve == nil {
		return 0, false
	}
	return s.resolve(t)
}

// feeByHour mimics a rush-hour tariff: a flat fee per hour of day, untariffed
// outside 06:00-18:30.
func feeByHour(t time.Time) (int64, bool) {
	switch h := t.UTC().Hour(); {
	case h < 6:
		return 0, false
	case h == 7:
		return 18, true
	case h == 8:
		return 13, true
	case h >= 19:
		return 0, false
	default:
		return 8, true
	}
}

func newTestCalculator(classifier *stubClassifier, resolver *stubResolver) *Calculator {
	return NewCalculator(classifier, resolver, time.UTC, 60*time.Minute, 60)
}

func TestComputeDailyTolls_ExemptVehicleShortCircuits(t *testing.T) {
	classifier := &stubClassifier{}
	resolver := &stubResolver{}
	calc := newTestCalculator(classifier, resolver)

	times := []time.Time{time.Date(2025, 10, 7, 7, 15, 0, 0, time.UTC)}

	for _, vehicle := range []VehicleClass{VehicleMotorbike, VehicleTractor, VehicleEmergency, VehicleDiplomat, VehicleForeign, VehicleMilitary} {
		totals, err := calc.ComputeDailyTolls(context.Background(), vehicle, times)
		require.NoError(t, err)
		assert.Empty(t, totals)
	}

	assert.Zero(t, classifier.calls, "calendar must not be consulted for exempt vehicles")
	assert.Zero(t, resolver.calls, "tariff must not be consulted for exempt vehicles")
}

func TestComputeDailyTolls_EmptyInput(t *testing.T) {
	calc := newTestCalculator(&stubClassifier{}, &stubResolver{})

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, nil)
	assert.ErrorIs(t, err, ErrNoTollTimes)
	assert.Nil(t, totals)
}

func TestComputeDailyTolls_AllTollFreeDates(t *testing.T) {
	classifier := &stubClassifier{tollFree: func(time.Time) bool { return true }}
	resolver := &stubResolver{resolve: feeByHour}
	calc := newTestCalculator(classifier, resolver)

	// A Sunday.
	times := []time.Time{
		time.Date(2025, 10, 5, 7, 15, 0, 0, time.UTC),
		time.Date(2025, 10, 5, 8, 45, 0, 0, time.UTC),
	}

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, times)
	require.NoError(t, err)
	assert.Empty(t, totals)
	assert.Zero(t, resolver.calls, "tariff must not be consulted when every date is toll-free")
}

func TestComputeDailyTolls_SingleWindowChargesMax(t *testing.T) {
	resolver := &stubResolver{resolve: func(t time.Time) (int64, bool) {
		switch t.Minute() {
		case 0:
			return 10, true
		case 30:
			return 20, true
		default:
			return 15, true
		}
	}}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, []time.Time{
		time.Date(2025, 10, 7, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 7, 8, 30, 0, 0, time.UTC),
		time.Date(2025, 10, 7, 8, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), totals[0].Date)
	assert.Equal(t, int64(20), totals[0].FeeSek)
}

func TestComputeDailyTolls_TwoWindows(t *testing.T) {
	resolver := &stubResolver{resolve: func(t time.Time) (int64, bool) {
		switch {
		case t.Hour() == 8 && t.Minute() == 0:
			return 10, true
		case t.Hour() == 8 && t.Minute() == 40:
			return 25, true
		default:
			return 15, true
		}
	}}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, []time.Time{
		time.Date(2025, 10, 7, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 7, 8, 40, 0, 0, time.UTC),
		time.Date(2025, 10, 7, 9, 10, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(40), totals[0].FeeSek)
}

func TestComputeDailyTolls_DailyCapApplies(t *testing.T) {
	// Eight crossings whose raw window fees sum to 70: windows of
	// 10, 20, 20, 10 and 10.
	fees := map[string]int64{
		"06:00": 10, "06:30": 10,
		"07:30": 20, "07:40": 10,
		"09:00": 20,
		"10:30": 10,
		"11:45": 10, "12:40": 10,
	}
	resolver := &stubResolver{resolve: func(t time.Time) (int64, bool) {
		fee, ok := fees[t.Format("15:04")]
		return fee, ok
	}}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	var times []time.Time
	for hhmm := range fees {
		parsed, err := time.Parse("2006-01-02 15:04", "2025-10-07 "+hhmm)
		require.NoError(t, err)
		times = append(times, parsed)
	}

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, times)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(60), totals[0].FeeSek)
}

func TestComputeDailyTolls_DateBoundaryNeverMergesWindows(t *testing.T) {
	resolver := &stubResolver{resolve: func(time.Time) (int64, bool) { return 8, true }}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	// Thirty minutes apart in absolute time, but on different local dates.
	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, []time.Time{
		time.Date(2025, 10, 7, 23, 50, 0, 0, time.UTC),
		time.Date(2025, 10, 8, 0, 20, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), totals[0].Date)
	assert.Equal(t, int64(8), totals[0].FeeSek)
	assert.Equal(t, time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), totals[1].Date)
	assert.Equal(t, int64(8), totals[1].FeeSek)
}

func TestComputeDailyTolls_UnsortedInputIsOrdered(t *testing.T) {
	resolver := &stubResolver{resolve: feeByHour}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, []time.Time{
		time.Date(2025, 10, 9, 7, 15, 0, 0, time.UTC),
		time.Date(2025, 10, 7, 7, 15, 0, 0, time.UTC),
		time.Date(2025, 10, 8, 7, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.True(t, totals[0].Date.Before(totals[1].Date))
	assert.True(t, totals[1].Date.Before(totals[2].Date))
}

func TestComputeDailyTolls_ResolverInconsistencyIsAnError(t *testing.T) {
	// The resolver answers during eligibility filtering but not during fee
	// resolution, which the calculator must treat as an internal fault.
	calls := 0
	resolver := &stubResolver{resolve: func(time.Time) (int64, bool) {
		calls++
		return 18, calls <= 1
	}}
	calc := newTestCalculator(&stubClassifier{}, resolver)

	totals, err := calc.ComputeDailyTolls(context.Background(), VehicleCar, []time.Time{
		time.Date(2025, 10, 7, 7, 15, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTollTimes)
	assert.NotErrorIs(t, err, ErrNoTollsFound)
	assert.Nil(t, totals)
}

func TestIsTollFreeVehicle(t *testing.T) {
	assert.False(t, IsTollFreeVehicle(VehicleCar))
	assert.False(t, IsTollFreeVehicle(VehicleClass("Hovercraft")), "unknown classes are chargeable")
	assert.True(t, IsTollFreeVehicle(VehicleMotorbike))
	assert.True(t, IsTollFreeVehicle(VehicleMilitary))
}

func TestParseVehicleClass(t *testing.T) {
	parsed, err := ParseVehicleClass("Car")
	require.NoError(t, err)
	assert.Equal(t, VehicleCar, parsed)

	_, err = ParseVehicleClass("Bicycle")
	assert.Error(t, err)
}
