package models

// BookingRequest is the event an agent asks us to create. Start and End are
// RFC3339 strings, already normalized by the caller.
type BookingRequest struct {
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// BookingResult identifies the event the calendar created.
type BookingResult struct {
	ID string `json:"id"`
	// Existing is set when the calendar already held an event with this
	// request's idempotency id, i.e. a retried booking.
	Existing bool `json:"existing,omitempty"`
}
