package models

import (
	"fmt"
	"time"
)

// slotClock renders a 12-hour clock time without a leading zero, e.g. "9:00 AM".
const slotClock = "3:04 PM"

// TimeRange is the window a caller asked about. Start <= End is not enforced.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is a range already occupied by a calendar event, held in UTC.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the half-open intervals [b.Start, b.End) and
// [start, end) intersect.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// BusinessHours is the local-time window, in whole hours, within which slots are generated.
type BusinessHours struct {
	Start int `json:"start"` // e.g. 9 for 9:00 AM
	End   int `json:"end"`   // e.g. 17 for 5:00 PM
}

// DefaultBusinessHours is 9:00 to 17:00.
var DefaultBusinessHours = BusinessHours{Start: 9, End: 17}

// Slot is a free fixed-duration block. Start and End carry the calendar's location.
type Slot struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
}

// Label renders the slot as "9:00 AM - 9:30 AM".
func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s", s.Start.Format(slotClock), s.End.Format(slotClock))
}
