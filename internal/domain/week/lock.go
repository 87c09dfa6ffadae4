package week

import (
	"fmt"
	"time"
)

// LockPolicy fixes the moment within a week after which roster and pick
// mutations freeze. The default is Monday 17:00 in the league timezone.
type LockPolicy struct {
	Weekday  time.Weekday
	Hour     int
	Location *time.Location
}

func DefaultLockPolicy() LockPolicy {
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		loc = time.UTC
	}

	return LockPolicy{
		Weekday:  time.Monday,
		Hour:     17,
		Location: loc,
	}
}

func (p LockPolicy) Validate() error {
	if p.Hour < 0 || p.Hour > 23 {
		return fmt.Errorf("lock hour must be between 0 and 23")
	}
	if p.Location == nil {
		return fmt.Errorf("lock timezone is required")
	}

	return nil
}

// LockAt returns the lock threshold for the given week.
func (p LockPolicy) LockAt(key Key) (time.Time, error) {
	start, err := key.Start(p.Location)
	if err != nil {
		return time.Time{}, err
	}

	offset := (int(p.Weekday) + 6) % 7
	day := start.AddDate(0, 0, offset)

	return time.Date(day.Year(), day.Month(), day.Day(), p.Hour, 0, 0, 0, p.Location), nil
}

// IsLocked reports whether the instant is at or after the week's lock
// threshold. Pure function of time, evaluated fresh on every call.
func (p LockPolicy) IsLocked(instant time.Time, key Key) (bool, error) {
	lockAt, err := p.LockAt(key)
	if err != nil {
		return false, err
	}

	return !instant.Before(lockAt), nil
}
