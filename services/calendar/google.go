package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"tailortalk/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const allDayLayout = "2006-01-02"

// GoogleGateway talks to one Google Calendar through the v3 REST API.
type GoogleGateway struct {
	service    *gcal.Service
	calendarID string
	logger     *zap.Logger
}

// NewGoogleGateway authenticates with service-account credentials. credentials
// is either the JSON blob itself or a path to the key file. Extra options are
// appended after the credentials, which lets callers override the endpoint.
func NewGoogleGateway(ctx context.Context, logger *zap.Logger, credentials, calendarID string, opts ...option.ClientOption) (*GoogleGateway, error) {
	blob, err := loadCredentials(credentials)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{
		option.WithCredentialsJSON(blob),
		option.WithScopes(gcal.CalendarScope),
	}, opts...)
	service, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return NewGoogleGatewayWithService(service, calendarID, logger), nil
}

// NewGoogleGatewayWithService wraps an already configured service.
func NewGoogleGatewayWithService(service *gcal.Service, calendarID string, logger *zap.Logger) *GoogleGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleGateway{service: service, calendarID: calendarID, logger: logger}
}

func loadCredentials(credentials string) ([]byte, error) {
	trimmed := strings.TrimSpace(credentials)
	if trimmed == "" {
		return nil, errors.New("GOOGLE_APPLICATION_CREDENTIALS is empty")
	}
	if strings.HasPrefix(trimmed, "{") {
		return []byte(trimmed), nil
	}
	b, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}
	return b, nil
}

// ListEvents expands recurring events and walks every result page.
func (g *GoogleGateway) ListEvents(ctx context.Context, timeMin, timeMax string) ([]models.BusyInterval, error) {
	g.logger.Debug("listing calendar events",
		zap.String("calendarID", g.calendarID), zap.String("timeMin", timeMin), zap.String("timeMax", timeMax))

	var busy []models.BusyInterval
	call := g.service.Events.List(g.calendarID).
		TimeMin(timeMin).
		TimeMax(timeMax).
		SingleEvents(true).
		OrderBy("startTime")
	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			interval, ok := toBusyInterval(item)
			if !ok {
				g.logger.Warn("skipping event with unreadable times", zap.String("eventID", item.Id))
				continue
			}
			busy = append(busy, interval)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	g.logger.Info("fetched calendar events", zap.Int("count", len(busy)), zap.String("calendarID", g.calendarID))
	return busy, nil
}

// toBusyInterval reads an event's bounds in UTC. All-day events carry only a
// date, which is taken as UTC midnight without any zone conversion.
func toBusyInterval(item *gcal.Event) (models.BusyInterval, bool) {
	start, ok := parseEventTime(item.Start)
	if !ok {
		return models.BusyInterval{}, false
	}
	end, ok := parseEventTime(item.End)
	if !ok {
		return models.BusyInterval{}, false
	}
	return models.BusyInterval{Start: start, End: end}, true
}

func parseEventTime(dt *gcal.EventDateTime) (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		return t.UTC(), err == nil
	}
	if dt.Date != "" {
		t, err := time.ParseInLocation(allDayLayout, dt.Date, time.UTC)
		return t, err == nil
	}
	return time.Time{}, false
}

// InsertEvent books with a deterministic event id. A 409 means an earlier
// attempt already created it; a cancelled leftover is revived instead.
func (g *GoogleGateway) InsertEvent(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	event := &gcal.Event{
		Id:      EventID(g.calendarID, req),
		Summary: req.Summary,
		Start:   &gcal.EventDateTime{DateTime: req.Start},
		End:     &gcal.EventDateTime{DateTime: req.End},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err == nil {
		g.logger.Info("booked appointment", zap.String("eventID", created.Id), zap.String("summary", req.Summary))
		return models.BookingResult{ID: created.Id}, nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusConflict {
		return models.BookingResult{}, fmt.Errorf("failed to insert event: %w", err)
	}

	existing, getErr := g.service.Events.Get(g.calendarID, event.Id).Context(ctx).Do()
	if getErr != nil {
		return models.BookingResult{}, fmt.Errorf("event %s already exists but could not be read: %w", event.Id, getErr)
	}
	if existing.Status == "cancelled" {
		event.Status = "confirmed"
		revived, updErr := g.service.Events.Update(g.calendarID, event.Id, event).Context(ctx).Do()
		if updErr != nil {
			return models.BookingResult{}, fmt.Errorf("failed to restore cancelled event %s: %w", event.Id, updErr)
		}
		g.logger.Info("restored cancelled appointment", zap.String("eventID", revived.Id))
		return models.BookingResult{ID: revived.Id}, nil
	}

	g.logger.Info("appointment already booked", zap.String("eventID", existing.Id))
	return models.BookingResult{ID: existing.Id, Existing: true}, nil
}

// TimeZone reads the calendar's configured zone.
func (g *GoogleGateway) TimeZone(ctx context.Context) (string, error) {
	cal, err := g.service.Calendars.Get(g.calendarID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read calendar %s: %w", g.calendarID, err)
	}
	return cal.TimeZone, nil
}
