package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/week"
)

// WeekInfo is the lock status of one league week at a point in time.
type WeekInfo struct {
	Key    week.Key
	LockAt time.Time
	Locked bool
}

// WeekService resolves week keys and evaluates the lock threshold. Lock
// status is a pure function of the clock, never cached.
type WeekService struct {
	lock week.LockPolicy
	now  func() time.Time
}

func NewWeekService(lock week.LockPolicy) *WeekService {
	return &WeekService{
		lock: lock,
		now:  time.Now,
	}
}

// CurrentKey maps the present instant to its week key in the league timezone.
func (s *WeekService) CurrentKey() week.Key {
	return week.KeyFromTime(s.now(), s.lock.Location)
}

func (s *WeekService) Current() (WeekInfo, error) {
	return s.Info(s.CurrentKey())
}

func (s *WeekService) Info(key week.Key) (WeekInfo, error) {
	if err := key.Validate(); err != nil {
		return WeekInfo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lockAt, err := s.lock.LockAt(key)
	if err != nil {
		return WeekInfo{}, fmt.Errorf("lock threshold for week %s: %w", key, err)
	}
	locked, err := s.lock.IsLocked(s.now(), key)
	if err != nil {
		return WeekInfo{}, fmt.Errorf("lock status for week %s: %w", key, err)
	}

	return WeekInfo{Key: key, LockAt: lockAt, Locked: locked}, nil
}

// ResolveKey validates a caller-supplied week key, defaulting to the current
// week when empty.
func (s *WeekService) ResolveKey(raw string) (week.Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.CurrentKey(), nil
	}

	key := week.Key(raw)
	if err := key.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return key, nil
}

// requireUnlocked gates mutations on the week lock.
func (s *WeekService) requireUnlocked(key week.Key) error {
	locked, err := s.lock.IsLocked(s.now(), key)
	if err != nil {
		return fmt.Errorf("lock status for week %s: %w", key, err)
	}
	if locked {
		return fmt.Errorf("%w: %s", ErrLockedWeek, key)
	}
	return nil
}
