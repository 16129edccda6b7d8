package handlers

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Reservations *ReservationHandler
	Availability *AvailabilityHandler
	Tiers        *TierHandler
}
