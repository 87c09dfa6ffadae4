package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/platform/cache"
)

var scheduleHomePool = []string{"TOR", "MTL", "BOS", "NYR", "VAN", "EDM", "WPG", "OTT"}
var scheduleAwayPool = []string{"BUF", "DET", "CHI", "PIT", "NSH", "DAL", "LAK", "SJS"}

// gamesPerDay maps the day offset within a week (0 = Monday) to the number
// of games scheduled that day. Saturday carries the heavy slate.
var gamesPerDay = map[int]int{
	0: 6,
	1: 5,
	2: 5,
	3: 5,
	4: 5,
	5: 10,
	6: 5,
}

const scheduleStartHour = 19

// ScheduleService owns the per-week game list. Generation is deterministic
// per week key, so concurrent ensures converge on identical games and a week
// is never regenerated differently once stored.
type ScheduleService struct {
	repo     game.ScheduleRepository
	cache    *cache.Store
	timezone *time.Location
}

func NewScheduleService(repo game.ScheduleRepository, cacheStore *cache.Store, timezone *time.Location) *ScheduleService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &ScheduleService{
		repo:     repo,
		cache:    cacheStore,
		timezone: timezone,
	}
}

// EnsureWeek stores the week's schedule if absent and returns it.
func (s *ScheduleService) EnsureWeek(ctx context.Context, key week.Key) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.EnsureWeek")
	defer span.End()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out []game.Game
	err := s.repo.Update(ctx, key, func(games []game.Game) ([]game.Game, error) {
		if len(games) > 0 {
			out = games
			return games, nil
		}

		generated, err := s.generate(key)
		if err != nil {
			return nil, err
		}
		out = generated
		return generated, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ensure week schedule: %w", err)
	}

	s.cache.DeletePrefix(ctx, scheduleCachePrefix(key))
	return out, nil
}

// GetWeek returns the stored schedule, generating it on first read. Reads go
// through the TTL cache; winner resolution invalidates it.
func (s *ScheduleService) GetWeek(ctx context.Context, key week.Key) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.GetWeek")
	defer span.End()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	value, err := s.cache.GetOrLoad(ctx, scheduleCacheKey(key), func(ctx context.Context) (any, error) {
		games, ok, err := s.repo.GetWeek(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get week schedule: %w", err)
		}
		if ok {
			return games, nil
		}
		return s.EnsureWeek(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	games, ok := value.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("unexpected cached schedule type %T", value)
	}
	return games, nil
}

// ResolveWinner records a game result. Already-resolved games are left
// untouched; results are append-only within a week.
func (s *ScheduleService) ResolveWinner(ctx context.Context, key week.Key, gameID string, outcome game.Outcome) error {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.ResolveWinner")
	defer span.End()

	if _, ok := game.AllOutcomes[outcome]; !ok {
		return fmt.Errorf("%w: invalid outcome %q", ErrInvalidInput, outcome)
	}

	err := s.repo.Update(ctx, key, func(games []game.Game) ([]game.Game, error) {
		for i := range games {
			if games[i].ID != gameID {
				continue
			}
			if games[i].Resolved() {
				return games, nil
			}
			winner := outcome
			games[i].Winner = &winner
			return games, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	})
	if err != nil {
		return fmt.Errorf("resolve winner for game %s: %w", gameID, err)
	}

	s.cache.DeletePrefix(ctx, scheduleCachePrefix(key))
	return nil
}

func (s *ScheduleService) generate(key week.Key) ([]game.Game, error) {
	var out []game.Game
	idx := 0
	for offset := 0; offset < 7; offset++ {
		date, err := key.DateAt(offset)
		if err != nil {
			return nil, err
		}
		day, err := time.ParseInLocation("2006-01-02", date, s.timezone)
		if err != nil {
			return nil, fmt.Errorf("parse schedule date %s: %w", date, err)
		}
		startAt := time.Date(day.Year(), day.Month(), day.Day(), scheduleStartHour, 0, 0, 0, s.timezone)

		for i := 0; i < gamesPerDay[offset]; i++ {
			home := scheduleHomePool[idx%len(scheduleHomePool)]
			away := scheduleAwayPool[(idx+3)%len(scheduleAwayPool)]
			out = append(out, game.Game{
				ID:      fmt.Sprintf("g-%s-%02d", date, i+1),
				Date:    date,
				Home:    home,
				Away:    away,
				StartAt: startAt,
			})
			idx++
		}
	}
	return out, nil
}

// Cached schedule projections for a week share this prefix; invalidation
// sweeps the whole namespace so no per-week entry can go stale.
func scheduleCachePrefix(key week.Key) string {
	return "schedule:" + string(key)
}

func scheduleCacheKey(key week.Key) string {
	return scheduleCachePrefix(key) + ":games"
}
