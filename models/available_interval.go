package models

// AvailableInterval represents a continuous time block in minutes from midnight.
type AvailableInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// TimeWindow is a free gap formatted for clients.
type TimeWindow struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// OccupiedInterval is a reservation as it blocks a day. End equals Start when
// the reservation has no end time yet.
type OccupiedInterval struct {
	ReservationID string            `json:"reservationId"`
	Start         string            `json:"start"`
	End           string            `json:"end"`
	Status        ReservationStatus `json:"status"`
}

// DaySlots is the reconciled view of one service day.
type DaySlots struct {
	ServiceID string             `json:"serviceId"`
	Date      string             `json:"date"`
	Free      []TimeWindow       `json:"free"`
	Occupied  []OccupiedInterval `json:"occupied"`
}
