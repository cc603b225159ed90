package toll

import "time"

// aggregateWindows groups one day's crossing events into charge windows and
// returns the highest fee of each window, in window order.
//
// A window is anchored at its first event and holds every event that occurs
// strictly less than `window` after that anchor; the anchor never moves while
// the window is open. An event exactly `window` after the anchor closes the
// current window and starts a new one.
//
// Events must already be sorted ascending by time and belong to a single
// local calendar day; this is the caller's responsibility and is not checked
// here.
func aggregateWindows(events []CrossingEvent, window time.Duration) []int64 {
	if len(events) == 0 {
		return nil
	}

	anchor := events[0].Time
	windowMax := events[0].FeeSek
	var fees []int64

	for _, event := range events[1:] {
		if event.Time.Sub(anchor) < window {
			if event.FeeSek > windowMax {
				windowMax = event.FeeSek
			}
		} else {
			fees = append(fees, windowMax)
			anchor = event.Time
			windowMax = event.FeeSek
		}
	}

	fees = append(fees, windowMax)
	return fees
}

// capDaily sums a day's window fees and clamps the total at the daily ceiling.
func capDaily(windowFees []int64, capSek int64) int64 {
	var total int64
	for _, fee := range windowFees {
		total += fee
	}
	if total > capSek {
		total = capSek
	}
	return total
}
