package timezone

import (
	"hotelres/config"
	"hotelres/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Manila', 'UTC', 'America/New_York'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return time.Now().UTC()
	}
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return t.UTC()
	}
	return t.In(appLocation)
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Calendar dates carry no time of day and no zone. They are stored as
// midnight UTC so that day arithmetic never crosses a DST boundary.

// ParseDate parses a "2006-01-02" calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constant.CalendarFormat, value)
	if err != nil {
		return time.Time{}, err
	}

	return t, nil
}

// TruncateDate drops the time of day, keeping the calendar date as seen in t's own location.
func TruncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as "2006-01-02". The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return t.Format(constant.CalendarFormat)
}

// DaysBetween counts calendar days from start to end; negative when end is before start.
func DaysBetween(start, end time.Time) int {
	return int(TruncateDate(end).Sub(TruncateDate(start)).Hours() / constant.HoursPerDay)
}
