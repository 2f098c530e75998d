package calendar

import (
	"context"
	"crypto/sha256"
	"encoding/base32"
	"strings"

	"tailortalk/models"
)

// Gateway is the slice of a calendar service the booking tools need. It is
// bound to a single calendar.
type Gateway interface {
	// ListEvents returns the busy intervals of events overlapping [timeMin, timeMax].
	ListEvents(ctx context.Context, timeMin, timeMax string) ([]models.BusyInterval, error)
	// InsertEvent creates an event. Implementations should dedupe retries of
	// the same request using EventID.
	InsertEvent(ctx context.Context, req models.BookingRequest) (models.BookingResult, error)
	// TimeZone returns the calendar's IANA zone name.
	TimeZone(ctx context.Context) (string, error)
}

var eventIDEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

// EventID derives a stable event id from the booking, so a retried insert
// collides with the first one instead of creating a duplicate. The result
// only uses [0-9a-v], which Google Calendar accepts as a client-supplied id.
func EventID(calendarID string, req models.BookingRequest) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{calendarID, req.Summary, req.Start, req.End}, "\x00")))
	return strings.ToLower(eventIDEncoding.EncodeToString(sum[:]))
}
