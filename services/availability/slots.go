package availability

import (
	"context"
	"fmt"

	"slotwise/models"
)

// AvailableIntervals reconciles the template window of date's weekday with the
// reservations that still hold a slot on that day.
func (s *DefaultAvailabilityService) AvailableIntervals(ctx context.Context, serviceID, date string) (*models.DaySlots, error) {
	day, err := ParseDate(date, s.Location)
	if err != nil {
		return nil, err
	}
	if _, err := s.service(ctx, serviceID); err != nil {
		return nil, err
	}

	slots := &models.DaySlots{
		ServiceID: serviceID,
		Date:      day.Format(DateLayout),
		Free:      []models.TimeWindow{},
		Occupied:  []models.OccupiedInterval{},
	}

	start, end, open, err := s.OpenWindow(ctx, serviceID, day)
	if err != nil || !open {
		return slots, err
	}

	reservations, err := s.Reservations.ListByServiceDate(ctx, serviceID, slots.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	blocks := make([]Block, 0, len(reservations))
	for _, res := range reservations {
		if !occupies(res) {
			continue
		}
		b, ok := blockFor(res)
		if !ok {
			continue
		}
		blocks = append(blocks, b)
		slots.Occupied = append(slots.Occupied, models.OccupiedInterval{
			ReservationID: res.ID,
			Start:         FormatClock(b.Start),
			End:           FormatClock(b.End),
			Status:        res.Status,
		})
	}

	for _, gap := range ReconcileDay(start, end, blocks) {
		slots.Free = append(slots.Free, models.TimeWindow{Start: FormatClock(gap.Start), End: FormatClock(gap.End)})
	}
	return slots, nil
}
