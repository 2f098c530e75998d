package booking

import (
	"context"
	"fmt"
	"time"

	"tailortalk/models"
	"tailortalk/services/calendar"
	ai "tailortalk/services/intelligence"

	"go.uber.org/zap"
)

const dayLayout = "Monday, January 2 2006"

const rfc3339Hint = "Input MUST be in RFC3339 format (YYYY-MM-DDTHH:MM:SSZ or YYYY-MM-DDTHH:MM:SS+HH:MM). Example: '2025-07-07T10:00:00Z'"

// Tools exposes availability checks and bookings to the agent. Every method
// returns text; failures are described rather than returned as errors.
type Tools struct {
	Gateway       calendar.Gateway
	BusinessHours models.BusinessHours
	SlotMinutes   int
	Logger        *zap.Logger
}

func NewTools(gw calendar.Gateway, hours models.BusinessHours, slotMinutes int, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{Gateway: gw, BusinessHours: hours, SlotMinutes: slotMinutes, Logger: logger}
}

// CheckAvailability lists the free slots on the day startTime falls on.
func (t *Tools) CheckAvailability(ctx context.Context, startTime, endTime string) string {
	start := t.normalize("start_time", startTime)
	end := t.normalize("end_time", endTime)
	t.Logger.Info("checking availability", zap.String("start", start), zap.String("end", end))

	loc := t.location(ctx)

	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return fmt.Sprintf("Error checking availability: could not read start time %q", startTime)
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		endAt = startAt
	}

	// Slots cover the whole business day of start, so busy events are fetched
	// for that day as well as for the requested window.
	open, closing := calendar.BusinessWindow(startAt, loc, t.BusinessHours)
	timeMin, timeMax := start, end
	if open.Before(startAt) {
		timeMin = open.UTC().Format(time.RFC3339)
	}
	if closing.After(endAt) {
		timeMax = closing.UTC().Format(time.RFC3339)
	}

	busy, err := t.Gateway.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		t.Logger.Error("calendar list failed", zap.Error(err))
		return fmt.Sprintf("Error checking availability: %v", err)
	}

	slots := calendar.AvailableSlots(models.TimeRange{Start: startAt, End: endAt}, busy, loc, t.BusinessHours, t.SlotMinutes)
	day := startAt.In(loc).Format(dayLayout)
	if len(slots) == 0 {
		return fmt.Sprintf("No available slots on %s (%s).", day, loc)
	}
	return fmt.Sprintf("Available slots on %s (%s): %s", day, loc, calendar.FormatSlots(slots))
}

// BookAppointment creates the event and reports its id.
func (t *Tools) BookAppointment(ctx context.Context, summary, startTime, endTime string) string {
	req := models.BookingRequest{
		Summary: summary,
		Start:   t.normalize("start_time", startTime),
		End:     t.normalize("end_time", endTime),
	}
	t.Logger.Info("booking appointment",
		zap.String("summary", req.Summary), zap.String("start", req.Start), zap.String("end", req.End))

	res, err := t.Gateway.InsertEvent(ctx, req)
	if err != nil {
		t.Logger.Error("calendar insert failed", zap.Error(err))
		return fmt.Sprintf("Failed to book appointment: %v", err)
	}
	if res.Existing {
		return fmt.Sprintf("This appointment was already booked. Event ID: %s", res.ID)
	}
	return fmt.Sprintf("Appointment booked successfully. Event ID: %s", res.ID)
}

// Definitions describes both tools for the agent.
func (t *Tools) Definitions() []ai.Tool {
	return []ai.Tool{
		{
			Name:        "check_availability",
			Description: "Check available time slots between given start and end times. " + rfc3339Hint,
			Params: []ai.ToolParam{
				{Name: "start_time", Description: "Start of the window to check, RFC3339", Required: true},
				{Name: "end_time", Description: "End of the window to check, RFC3339", Required: true},
			},
			Handler: func(ctx context.Context, args map[string]string) string {
				return t.CheckAvailability(ctx, args["start_time"], args["end_time"])
			},
		},
		{
			Name:        "book_appointment",
			Description: "Book an appointment with event title and time slot. " + rfc3339Hint,
			Params: []ai.ToolParam{
				{Name: "summary", Description: "Title of the appointment", Required: true},
				{Name: "start_time", Description: "Appointment start, RFC3339", Required: true},
				{Name: "end_time", Description: "Appointment end, RFC3339", Required: true},
			},
			Handler: func(ctx context.Context, args map[string]string) string {
				return t.BookAppointment(ctx, args["summary"], args["start_time"], args["end_time"])
			},
		},
	}
}

func (t *Tools) normalize(field, raw string) string {
	n := calendar.NormalizeTimestamp(raw)
	if n.WasGuessed {
		t.Logger.Warn("unrecognised timestamp, passing it through", zap.String("field", field), zap.String("value", raw))
	}
	return n.Value
}

// location falls back to UTC when the calendar's zone cannot be read.
func (t *Tools) location(ctx context.Context) *time.Location {
	tz, err := t.Gateway.TimeZone(ctx)
	if err != nil {
		t.Logger.Warn("could not read calendar time zone, using UTC", zap.Error(err))
		return time.UTC
	}
	return calendar.ResolveLocation(tz, t.Logger)
}
