package expiry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeExpireReservation = "reservation:expire"
	QueueExpiry           = "expiry"
)

// ExpirePayload identifies the reservation a deferred expiry belongs to.
type ExpirePayload struct {
	ReservationID string    `json:"reservationId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewExpireTask(payload ExpirePayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExpireReservation, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.Queue(QueueExpiry),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func ParseExpirePayload(raw []byte) (ExpirePayload, error) {
	var p ExpirePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("invalid expiry payload: %w", err)
	}
	if p.ReservationID == "" {
		return p, fmt.Errorf("invalid expiry payload: missing reservation id")
	}
	return p, nil
}
