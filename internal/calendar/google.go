package calendar

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"meeting-service/internal/config"
	"meeting-service/internal/models"
)

const primaryCalendar = "primary"

// GoogleCalendar reads busy events from a user's Google Calendar. The caller
// passes the OAuth2 token obtained from the consent flow as JSON.
type GoogleCalendar struct {
	config   *oauth2.Config
	location *time.Location
	options  []option.ClientOption
}

// NewGoogleCalendar returns nil when the OAuth client is not configured.
func NewGoogleCalendar(cfg config.GoogleConfig, location *time.Location, opts ...option.ClientOption) *GoogleCalendar {
	if !cfg.Enabled() {
		return nil
	}
	return &GoogleCalendar{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gcalendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		location: location,
		options:  opts,
	}
}

func (g *GoogleCalendar) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token, returned as JSON.
func (g *GoogleCalendar) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(models.ValidationError, "failed to exchange code for token")
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return "", errors.Wrap(err, "encoding google token")
	}
	return string(raw), nil
}

func (g *GoogleCalendar) BusyIntervals(ctx context.Context, credentials string, from, to time.Time) ([]models.BusyInterval, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(credentials), &token); err != nil {
		return nil, errors.Wrap(models.ValidationError, "invalid google token format")
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(g.config.Client(ctx, &token))}, g.options...)
	srv, err := gcalendar.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating calendar service")
	}

	var intervals []models.BusyInterval
	err = srv.Events.List(primaryCalendar).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		MaxResults(250).
		Pages(ctx, func(events *gcalendar.Events) error {
			for _, item := range events.Items {
				if interval, ok := g.busyInterval(item); ok {
					intervals = append(intervals, interval)
				}
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve google calendar events")
	}
	return intervals, nil
}

// busyInterval skips cancelled events, events marked free and events whose
// bounds cannot be read.
func (g *GoogleCalendar) busyInterval(item *gcalendar.Event) (models.BusyInterval, bool) {
	if item.Status == "cancelled" || item.Transparency == "transparent" {
		return models.BusyInterval{}, false
	}
	start, ok := g.eventTime(item.Start)
	if !ok {
		return models.BusyInterval{}, false
	}
	end, ok := g.eventTime(item.End)
	if !ok || !start.Before(end) {
		return models.BusyInterval{}, false
	}
	return models.BusyInterval{Start: start, End: end, Summary: item.Summary}, true
}

func (g *GoogleCalendar) eventTime(t *gcalendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		return parsed, err == nil
	}
	// all-day events
	if t.Date != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, t.Date, g.location)
		return parsed, err == nil
	}
	return time.Time{}, false
}
