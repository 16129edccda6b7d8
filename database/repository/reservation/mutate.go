package reservationRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

// MaxMutateAttempts bounds the read-modify-write retries of Mutate.
const MaxMutateAttempts = 5

// Mutate re-reads the reservation, applies fn to a copy and writes it back
// with a revision check, retrying from a fresh read when another writer got
// there first. fn reports whether it changed anything; unchanged copies are
// not written. The returned before is the state fn saw on the attempt that
// won, so callers can detect edges exactly once.
func Mutate(ctx context.Context, repo ReservationRepository, id string, fn func(res *models.Reservation) (bool, error)) (before, after *models.Reservation, err error) {
	for attempt := 0; attempt < MaxMutateAttempts; attempt++ {
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		next := current.Clone()
		changed, err := fn(next)
		if err != nil {
			return current, nil, err
		}
		if !changed {
			return current, current, nil
		}
		err = repo.Update(ctx, next, current.Revision)
		if errors.Is(err, ErrRevisionConflict) {
			continue
		}
		if err != nil {
			return current, nil, err
		}
		return current, next, nil
	}
	return nil, nil, ErrRevisionConflict
}
