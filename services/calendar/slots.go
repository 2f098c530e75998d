package calendar

import (
	"strings"
	"time"

	"tailortalk/models"

	"go.uber.org/zap"
)

// DefaultSlotMinutes is the slot length used when none is configured.
const DefaultSlotMinutes = 30

// AvailableSlots returns the free slotMinutes-long slots inside the business
// window of the day r.Start falls on in loc. Only that one day is considered,
// even when r spans several. A candidate is dropped when any busy interval
// overlaps it; intervals that merely touch a slot boundary do not count.
func AvailableSlots(r models.TimeRange, busy []models.BusyInterval, loc *time.Location, hours models.BusinessHours, slotMinutes int) []models.Slot {
	if loc == nil {
		loc = time.UTC
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	open, closing := BusinessWindow(r.Start, loc, hours)
	step := time.Duration(slotMinutes) * time.Minute

	var slots []models.Slot
	for start := open; !start.Add(step).After(closing); start = start.Add(step) {
		end := start.Add(step)
		if isBusy(busy, start.UTC(), end.UTC()) {
			continue
		}
		slots = append(slots, models.Slot{Start: start, End: end, Duration: step})
	}
	return slots
}

// BusinessWindow returns the opening and closing instants of the business day
// that t falls on in loc.
func BusinessWindow(t time.Time, loc *time.Location, hours models.BusinessHours) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	day := t.In(loc)
	open := time.Date(day.Year(), day.Month(), day.Day(), hours.Start, 0, 0, 0, loc)
	closing := time.Date(day.Year(), day.Month(), day.Day(), hours.End, 0, 0, 0, loc)
	return open, closing
}

func isBusy(busy []models.BusyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// ResolveLocation loads an IANA zone, falling back to UTC when the name is
// empty or unknown.
func ResolveLocation(name string, logger *zap.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown calendar time zone, falling back to UTC",
			zap.String("timeZone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

// FormatSlots joins slot labels with commas.
func FormatSlots(slots []models.Slot) string {
	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label())
	}
	return strings.Join(labels, ", ")
}
