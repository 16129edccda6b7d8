package availability

import (
	"sort"

	"slotwise/models"
)

// Block is an occupied span in minutes. Start == End is a zero-width block:
// it splits the day at Start but removes no free time.
type Block struct {
	Start int
	End   int
}

// ReconcileDay returns the positive-width gaps of [windowStart, windowEnd)
// left between blocks. Overlapping blocks merge. Blocks are not clamped to the
// window: creation only admits start times inside it.
func ReconcileDay(windowStart, windowEnd int, blocks []Block) []models.AvailableInterval {
	sorted := append([]Block(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	free := []models.AvailableInterval{}
	cursor := windowStart
	for _, b := range sorted {
		if b.Start > cursor {
			free = append(free, models.AvailableInterval{Start: cursor, End: b.Start})
		}
		cursor = max(cursor, b.End, b.Start)
	}
	if windowEnd > cursor {
		free = append(free, models.AvailableInterval{Start: cursor, End: windowEnd})
	}
	return free
}

// blockFor turns a reservation into its occupied span. A reservation without
// an end time blocks the single minute it asked for.
func blockFor(res models.Reservation) (Block, bool) {
	start, err := ParseClock(res.StartTime)
	if err != nil {
		return Block{}, false
	}
	end := start
	if res.EndTime != "" {
		if e, err := ParseClock(res.EndTime); err == nil && e > start {
			end = e
		}
	}
	return Block{Start: start, End: end}, true
}

// occupies reports whether a reservation is shown on the day. Only finished
// jobs give their slot back.
func occupies(res models.Reservation) bool {
	return !res.JobInProgress
}
