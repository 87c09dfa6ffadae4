package week

import (
	"fmt"
	"time"
)

const keyLayout = "2006-01-02"

// Key identifies a league week by the date of the Monday that starts it,
// formatted YYYY-MM-DD in the league's reference timezone. Keys order
// naturally by calendar date.
type Key string

// KeyFromTime maps any instant to the Monday of its containing ISO week in
// the given timezone.
func KeyFromTime(instant time.Time, loc *time.Location) Key {
	local := instant.In(loc)
	// Monday offset: Mon=0 .. Sun=6.
	back := (int(local.Weekday()) + 6) % 7
	monday := local.AddDate(0, 0, -back)

	return Key(monday.Format(keyLayout))
}

func (k Key) Validate() error {
	t, err := time.Parse(keyLayout, string(k))
	if err != nil {
		return fmt.Errorf("week key must be a YYYY-MM-DD date: %w", err)
	}
	if t.Weekday() != time.Monday {
		return fmt.Errorf("week key %s is not a Monday", k)
	}

	return nil
}

// Start returns the Monday at 00:00 in the given timezone.
func (k Key) Start(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(keyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week key %s: %w", k, err)
	}

	return t, nil
}

// DateAt returns the date string for the given day offset within the week
// (0 = Monday .. 6 = Sunday).
func (k Key) DateAt(offset int) (string, error) {
	t, err := time.Parse(keyLayout, string(k))
	if err != nil {
		return "", fmt.Errorf("parse week key %s: %w", k, err)
	}

	return t.AddDate(0, 0, offset).Format(keyLayout), nil
}
