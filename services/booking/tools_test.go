package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tailortalk/models"
	"tailortalk/services/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryGateway reflects inserts in later listings and, like Google Calendar,
// only lists events overlapping [timeMin, timeMax).
type memoryGateway struct {
	mu       sync.Mutex
	events   map[string]models.BusyInterval
	timeZone string
	tzErr    error
	listErr  error
	insErr   error
	windows  [][2]string
}

func newMemoryGateway() *memoryGateway {
	return &memoryGateway{events: map[string]models.BusyInterval{}, timeZone: "UTC"}
}

func (g *memoryGateway) ListEvents(ctx context.Context, timeMin, timeMax string) ([]models.BusyInterval, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	lo, err := time.Parse(time.RFC3339, timeMin)
	if err != nil {
		return nil, err
	}
	hi, err := time.Parse(time.RFC3339, timeMax)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.windows = append(g.windows, [2]string{timeMin, timeMax})
	out := make([]models.BusyInterval, 0, len(g.events))
	for _, b := range g.events {
		if b.Overlaps(lo, hi) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (g *memoryGateway) InsertEvent(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	if g.insErr != nil {
		return models.BookingResult{}, g.insErr
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return models.BookingResult{}, err
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return models.BookingResult{}, err
	}
	id := calendar.EventID("test", req)
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.events[id]; ok {
		return models.BookingResult{ID: id, Existing: true}, nil
	}
	g.events[id] = models.BusyInterval{Start: start.UTC(), End: end.UTC()}
	return models.BookingResult{ID: id}, nil
}

func (g *memoryGateway) TimeZone(ctx context.Context) (string, error) {
	return g.timeZone, g.tzErr
}

func newTestTools(gw *memoryGateway) *Tools {
	return NewTools(gw, models.DefaultBusinessHours, 30, zap.NewNop())
}

func TestCheckAvailabilityEmptyCalendar(t *testing.T) {
	tools := newTestTools(newMemoryGateway())

	out := tools.CheckAvailability(context.Background(), "2025-07-07T00:00:00Z", "2025-07-07T23:59:59Z")
	assert.Contains(t, out, "Available slots on Monday, July 7 2025 (UTC): 9:00 AM - 9:30 AM")
	assert.Contains(t, out, "4:30 PM - 5:00 PM")
}

func TestBookingIsVisibleToNextAvailabilityCheck(t *testing.T) {
	tools := newTestTools(newMemoryGateway())
	ctx := context.Background()

	before := tools.CheckAvailability(ctx, "2025-07-07 00:00", "2025-07-07 23:59")
	require.Contains(t, before, "10:00 AM - 10:30 AM")

	booked := tools.BookAppointment(ctx, "Haircut", "2025-07-07T10:00:00", "2025-07-07T10:30:00")
	assert.Contains(t, booked, "Appointment booked successfully. Event ID: ")

	after := tools.CheckAvailability(ctx, "2025-07-07 00:00", "2025-07-07 23:59")
	assert.NotContains(t, after, "10:00 AM - 10:30 AM")
	assert.Contains(t, after, "9:30 AM - 10:00 AM")
	assert.Contains(t, after, "10:30 AM - 11:00 AM")
}

func TestBookAppointmentRetryReportsExisting(t *testing.T) {
	tools := newTestTools(newMemoryGateway())
	ctx := context.Background()

	first := tools.BookAppointment(ctx, "Haircut", "2025-07-07T10:00:00Z", "2025-07-07T10:30:00Z")
	again := tools.BookAppointment(ctx, "Haircut", "2025-07-07T10:00:00Z", "2025-07-07T10:30:00Z")
	assert.Contains(t, first, "booked successfully")
	assert.Contains(t, again, "already booked")
}

func TestToolsTurnFailuresIntoText(t *testing.T) {
	ctx := context.Background()

	t.Run("list failure", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.listErr = errors.New("403 forbidden")
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T00:00:00Z", "2025-07-08T00:00:00Z")
		assert.Equal(t, "Error checking availability: 403 forbidden", out)
	})
	t.Run("insert failure", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.insErr = errors.New("invalid start")
		out := newTestTools(gw).BookAppointment(ctx, "x", "2025-07-07T10:00:00Z", "2025-07-07T10:30:00Z")
		assert.Equal(t, "Failed to book appointment: invalid start", out)
	})
	t.Run("unparseable start", func(t *testing.T) {
		out := newTestTools(newMemoryGateway()).CheckAvailability(ctx, "monday", "tuesday")
		assert.Contains(t, out, `could not read start time "monday"`)
	})
	t.Run("malformed booking time reaches the gateway", func(t *testing.T) {
		out := newTestTools(newMemoryGateway()).BookAppointment(ctx, "x", "soon", "later")
		assert.Contains(t, out, "Failed to book appointment")
	})
}

func TestCheckAvailabilityTimeZones(t *testing.T) {
	ctx := context.Background()

	t.Run("calendar zone is used", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.timeZone = "Asia/Kolkata"
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T00:00:00+05:30", "2025-07-07T23:59:00+05:30")
		assert.Contains(t, out, "(Asia/Kolkata): 9:00 AM - 9:30 AM")
	})
	t.Run("zone lookup failure falls back to UTC", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.tzErr = errors.New("boom")
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T00:00:00Z", "2025-07-07T23:59:00Z")
		assert.Contains(t, out, "(UTC)")
	})
	t.Run("fully booked day", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.events["all"] = models.BusyInterval{
			Start: time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		}
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T00:00:00Z", "2025-07-07T23:59:00Z")
		assert.Equal(t, "No available slots on Monday, July 7 2025 (UTC).", out)
	})
}

func TestCheckAvailabilitySeesWholeBusinessDay(t *testing.T) {
	ctx := context.Background()

	t.Run("busy slot outside the requested window", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.events["afternoon"] = models.BusyInterval{
			Start: time.Date(2025, 7, 7, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 7, 7, 14, 30, 0, 0, time.UTC),
		}
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T10:00:00Z", "2025-07-07T11:00:00Z")
		assert.NotContains(t, out, "2:00 PM - 2:30 PM")
		assert.Contains(t, out, "1:30 PM - 2:00 PM")
		assert.Contains(t, out, "2:30 PM - 3:00 PM")
		require.Len(t, gw.windows, 1)
		assert.Equal(t, [2]string{"2025-07-07T09:00:00Z", "2025-07-07T17:00:00Z"}, gw.windows[0])
	})
	t.Run("window wider than the business day is kept", func(t *testing.T) {
		gw := newMemoryGateway()
		newTestTools(gw).CheckAvailability(ctx, "2025-07-07T00:00:00Z", "2025-07-07T23:59:00Z")
		require.Len(t, gw.windows, 1)
		assert.Equal(t, [2]string{"2025-07-07T00:00:00Z", "2025-07-07T23:59:00Z"}, gw.windows[0])
	})
	t.Run("business day in the calendar zone", func(t *testing.T) {
		gw := newMemoryGateway()
		gw.timeZone = "Asia/Kolkata"
		gw.events["late"] = models.BusyInterval{
			Start: time.Date(2025, 7, 7, 10, 30, 0, 0, time.UTC), // 4:00 PM IST
			End:   time.Date(2025, 7, 7, 11, 0, 0, 0, time.UTC),
		}
		out := newTestTools(gw).CheckAvailability(ctx, "2025-07-07T10:00:00+05:30", "2025-07-07T10:30:00+05:30")
		assert.NotContains(t, out, "4:00 PM - 4:30 PM")
		assert.Contains(t, out, "4:30 PM - 5:00 PM")
	})
}

func TestDefinitionsDispatch(t *testing.T) {
	tools := newTestTools(newMemoryGateway())
	defs := tools.Definitions()
	require.Len(t, defs, 2)

	byName := map[string]func(context.Context, map[string]string) string{}
	for _, d := range defs {
		byName[d.Name] = d.Handler
		assert.Contains(t, d.Description, "RFC3339")
	}

	out := byName["book_appointment"](context.Background(), map[string]string{
		"summary": "Sync", "start_time": "2025-07-07T13:00:00Z", "end_time": "2025-07-07T13:30:00Z",
	})
	assert.Contains(t, out, "booked successfully")

	out = byName["check_availability"](context.Background(), map[string]string{
		"start_time": "2025-07-07T00:00:00Z", "end_time": "2025-07-07T23:00:00Z",
	})
	assert.NotContains(t, out, "1:00 PM - 1:30 PM")
}
