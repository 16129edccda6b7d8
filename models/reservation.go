package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusRejected  ReservationStatus = "REJECTED"
	StatusCompleted ReservationStatus = "COMPLETED"
)

// ParseReservationStatus accepts any casing of a known status.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(upper(s)) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusRejected:
		return StatusRejected, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// Reservation is a requested or confirmed appointment for a time slot.
type Reservation struct {
	ID          string            `bson:"id" json:"id" gorm:"primaryKey;size:36"`
	ServiceID   string            `bson:"service_id" json:"serviceId" gorm:"index;size:36"`
	ProviderID  string            `bson:"provider_id" json:"providerId" gorm:"index;size:64"`
	RequesterID string            `bson:"requester_id" json:"requesterId" gorm:"index;size:64"`
	Date        string            `bson:"date" json:"date" gorm:"index;size:10"`                     // "YYYY-MM-DD"
	StartTime   string            `bson:"start_time" json:"startTime" gorm:"size:5"`                 // "HH:MM"
	EndTime     string            `bson:"end_time,omitempty" json:"endTime,omitempty" gorm:"size:5"` // empty until confirmed
	Status      ReservationStatus `bson:"status" json:"status" gorm:"index;size:16"`
	WorkNote    string            `bson:"work_note,omitempty" json:"workNote,omitempty"`

	RequesterLatitude  *float64 `bson:"requester_latitude,omitempty" json:"requesterLatitude,omitempty"`
	RequesterLongitude *float64 `bson:"requester_longitude,omitempty" json:"requesterLongitude,omitempty"`
	Address            string   `bson:"address,omitempty" json:"address,omitempty"`
	ImageURL           string   `bson:"image_url,omitempty" json:"imageUrl,omitempty"`

	ArrivalLatitude  *float64   `bson:"arrival_latitude,omitempty" json:"arrivalLatitude,omitempty"`
	ArrivalLongitude *float64   `bson:"arrival_longitude,omitempty" json:"arrivalLongitude,omitempty"`
	ArrivedAt        *time.Time `bson:"arrived_at,omitempty" json:"arrivedAt,omitempty"`
	ArrivalRating    int        `bson:"arrival_rating" json:"arrivalRating"` // 0 until the first arrival check
	LateMinutes      int        `bson:"late_minutes" json:"lateMinutes"`

	Notified15  bool `bson:"notified15" json:"notified15" gorm:"column:notified15"`
	Notified30  bool `bson:"notified30" json:"notified30" gorm:"column:notified30"`
	Notified60  bool `bson:"notified60" json:"notified60" gorm:"column:notified60"`
	Notified120 bool `bson:"notified120" json:"notified120" gorm:"column:notified120"`

	JobInProgress    bool                          `bson:"job_in_progress" json:"jobInProgress" gorm:"index"`
	PaymentConfirmed bool                          `bson:"payment_confirmed" json:"paymentConfirmed" gorm:"index"`
	OTPHash          string                        `bson:"otp_hash,omitempty" json:"-" gorm:"column:otp_hash"`
	OTPVerified      bool                          `bson:"otp_verified" json:"otpVerified" gorm:"column:otp_verified"`
	Notes            string                        `bson:"notes,omitempty" json:"notes,omitempty"`
	Images           datatypes.JSONSlice[JobImage] `bson:"images,omitempty" json:"images,omitempty"`

	Revision  int64     `bson:"revision" json:"revision"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasOTP reports whether a completion code was issued on confirmation.
func (r *Reservation) HasOTP() bool {
	return r.OTPHash != ""
}

// Done reports the completed-and-paid state the provider tier counts.
func (r *Reservation) Done() bool {
	return r.JobInProgress && r.PaymentConfirmed
}

// Active reports whether the reservation still blocks a new request from the
// same requester for the same service.
func (r *Reservation) Active() bool {
	return !r.JobInProgress && r.Status != StatusRejected
}

// Clone returns a deep copy so callers can compare before/after states.
func (r *Reservation) Clone() *Reservation {
	c := *r
	c.RequesterLatitude = cloneFloat(r.RequesterLatitude)
	c.RequesterLongitude = cloneFloat(r.RequesterLongitude)
	c.ArrivalLatitude = cloneFloat(r.ArrivalLatitude)
	c.ArrivalLongitude = cloneFloat(r.ArrivalLongitude)
	if r.ArrivedAt != nil {
		t := *r.ArrivedAt
		c.ArrivedAt = &t
	}
	if r.Images != nil {
		c.Images = append(datatypes.JSONSlice[JobImage]{}, r.Images...)
	}
	return &c
}

// ImageKind tells pickup and delivery photos apart.
type ImageKind string

const (
	ImagePickup   ImageKind = "pickup"
	ImageDelivery ImageKind = "delivery"
)

// JobImage is a geotagged photo attached while the job is carried out.
type JobImage struct {
	Kind       ImageKind `bson:"kind" json:"kind"`
	URL        string    `bson:"url" json:"url"`
	Latitude   *float64  `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude  *float64  `bson:"longitude,omitempty" json:"longitude,omitempty"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// LatenessThresholds are the minutes-late marks that each notify the provider
// once.
var LatenessThresholds = [...]int{15, 30, 60, 120}

// MarkLateness sets the notification flag of every threshold lateMinutes has
// reached and returns the largest threshold newly crossed, or 0.
func (r *Reservation) MarkLateness(lateMinutes int) int {
	flags := [...]*bool{&r.Notified15, &r.Notified30, &r.Notified60, &r.Notified120}
	crossed := 0
	for i, threshold := range LatenessThresholds {
		if lateMinutes >= threshold && !*flags[i] {
			*flags[i] = true
			crossed = threshold
		}
	}
	return crossed
}
