package booking

import (
	"slices"

	"slotwise/models"
	"slotwise/utils"
)

// transitions lists every status a reservation may move to from each state.
// REJECTED and COMPLETED are terminal; expiry deletes rather than transitions.
var transitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusRejected},
	models.StatusConfirmed: {models.StatusCompleted},
}

// transition is the only place a reservation's status changes.
func transition(res *models.Reservation, to models.ReservationStatus) error {
	if !slices.Contains(transitions[res.Status], to) {
		return utils.ConflictError("cannot move reservation from %s to %s", res.Status, to)
	}
	res.Status = to
	if to == models.StatusCompleted {
		res.JobInProgress = true
	}
	return nil
}
