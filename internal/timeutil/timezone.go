package timeutil

import (
	"fmt"
	"time"
)

// IsTimezoneValid reports whether tz names a zone in the system tz database.
func IsTimezoneValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// LoadTimezone loads a display zone. An empty name and "UTC" both give UTC.
func LoadTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", tz, err)
	}
	return loc, nil
}

// ZoneLabel describes loc as it stands at t, e.g. "Europe/Berlin (CET +01:00)".
func ZoneLabel(loc *time.Location, t time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s (%s)", loc.String(), t.In(loc).Format("MST -07:00"))
}
