package models

// CreateReservationInput is the requester's booking request.
type CreateReservationInput struct {
	RequesterID string
	ServiceID   string
	Date        string // "YYYY-MM-DD"
	StartTime   string // "HH:MM" or "h:mm AM"
	Latitude    *float64
	Longitude   *float64
	Address     string
	Image       *ImageUpload
}

// StatusUpdateInput carries a provider's decision on a pending reservation.
type StatusUpdateInput struct {
	Status   string
	EndTime  string
	WorkNote string
}

// ImageUpload is an image received from a client, optionally geotagged.
type ImageUpload struct {
	Filename  string
	Data      []byte
	Latitude  *float64
	Longitude *float64
}

// ProgressPatch is a partial update of job progress. Nil fields are left
// untouched.
type ProgressPatch struct {
	JobInProgress    *bool
	PaymentConfirmed *bool
	OTPCode          *string
	Notes            *string
	PickupImage      *ImageUpload
	DeliveryImage    *ImageUpload
}

// HasImages reports whether the patch attaches any new image.
func (p ProgressPatch) HasImages() bool {
	return p.PickupImage != nil || p.DeliveryImage != nil
}

// TouchesCompletion reports whether the patch sets either completion flag.
func (p ProgressPatch) TouchesCompletion() bool {
	return p.JobInProgress != nil || p.PaymentConfirmed != nil
}

// ArrivalResult is returned after a successful geofence check.
type ArrivalResult struct {
	Reservation    *Reservation `json:"reservation"`
	DistanceMeters float64      `json:"distanceMeters"`
	LateMinutes    int          `json:"lateMinutes"`
	Rating         int          `json:"rating"`
}
