package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
)

// PlayerSlot names one starter the feed should report on. An empty AltDay
// means the player plays the default Saturday game.
type PlayerSlot struct {
	PlayerID string
	AltDay   roster.Weekday
}

// ResultFeed delivers game outcomes and player production for a week from
// the upstream results provider.
type ResultFeed interface {
	Winners(ctx context.Context, key week.Key, games []game.Game) (map[string]game.Outcome, error)
	PlayerStats(ctx context.Context, key week.Key, slots []PlayerSlot) ([]stats.StatLine, error)
}

// WeekSyncResult summarizes one week's sync pass.
type WeekSyncResult struct {
	WeekKey       week.Key  `json:"week_key"`
	ResolvedGames int       `json:"resolved_games"`
	StatLines     int       `json:"stat_lines"`
	ComputedAt    time.Time `json:"computed_at"`
}

// SyncResult summarizes a multi-week sync run.
type SyncResult struct {
	WeekCount    int              `json:"week_count"`
	SuccessCount int              `json:"success_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Weeks        []WeekSyncResult `json:"weeks"`
}

const defaultSyncWorkers = 4

// ResultSyncService pulls results from the feed into week state: game
// winners first, then player stat lines, then a score recompute. A stat
// line for a date already recorded for that player is skipped, so reruns
// do not double-count.
type ResultSyncService struct {
	feed       ResultFeed
	schedules  *ScheduleService
	scoring    *ScoringService
	weeklyRepo weekly.Repository
	logger     *logging.Logger
}

func NewResultSyncService(
	feed ResultFeed,
	schedules *ScheduleService,
	scoringService *ScoringService,
	weeklyRepo weekly.Repository,
	logger *logging.Logger,
) *ResultSyncService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ResultSyncService{
		feed:       feed,
		schedules:  schedules,
		scoring:    scoringService,
		weeklyRepo: weeklyRepo,
		logger:     logger,
	}
}

// SyncWeek runs one full results pass for a week.
func (s *ResultSyncService) SyncWeek(ctx context.Context, key week.Key) (WeekSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultSyncService.SyncWeek")
	defer span.End()

	if err := key.Validate(); err != nil {
		return WeekSyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.schedules.GetWeek(ctx, key)
	if err != nil {
		return WeekSyncResult{}, err
	}

	winners, err := s.feed.Winners(ctx, key, games)
	if err != nil {
		return WeekSyncResult{}, fmt.Errorf("%w: fetch winners: %v", ErrDependencyUnavailable, err)
	}

	out := WeekSyncResult{WeekKey: key}
	for gameID, outcome := range winners {
		if err := s.schedules.ResolveWinner(ctx, key, gameID, outcome); err != nil {
			if errors.Is(err, ErrUnknownGame) {
				s.logger.WarnContext(ctx, "feed returned winner for unknown game", "week", string(key), "game_id", gameID)
				continue
			}
			return WeekSyncResult{}, err
		}
		out.ResolvedGames++
	}

	slots, err := s.starterSlots(ctx, key)
	if err != nil {
		return WeekSyncResult{}, err
	}

	if len(slots) > 0 {
		lines, err := s.feed.PlayerStats(ctx, key, slots)
		if err != nil {
			return WeekSyncResult{}, fmt.Errorf("%w: fetch player stats: %v", ErrDependencyUnavailable, err)
		}

		err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
			for _, line := range lines {
				st := state.Stats[line.PlayerID]
				if line.Date != "" && st.PlayedDates[line.Date] {
					continue
				}
				st.Accumulate(line)
				state.Stats[line.PlayerID] = st
				out.StatLines++
			}
			return nil
		})
		if err != nil {
			return WeekSyncResult{}, fmt.Errorf("apply stat lines: %w", err)
		}
	}

	result, err := s.scoring.Compute(ctx, key)
	if err != nil {
		return WeekSyncResult{}, err
	}
	out.ComputedAt = result.ComputedAt

	s.logger.InfoContext(ctx, "week results synced",
		"week", string(key),
		"resolved_games", out.ResolvedGames,
		"stat_lines", out.StatLines,
	)
	return out, nil
}

// SyncWeeks fans SyncWeek out over a bounded worker pool.
func (s *ResultSyncService) SyncWeeks(ctx context.Context, keys []week.Key, maxWorkers int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultSyncService.SyncWeeks")
	defer span.End()

	if len(keys) == 0 {
		return SyncResult{}, fmt.Errorf("%w: at least one week key is required", ErrInvalidInput)
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = defaultSyncWorkers
	}
	if workerCount > len(keys) {
		workerCount = len(keys)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := SyncResult{
		WeekCount:   len(keys),
		WorkerCount: workerCount,
		Weeks:       make([]WeekSyncResult, len(keys)),
	}

	var mu sync.Mutex
	var workers sync.WaitGroup
	for i, key := range keys {
		i, key := i, key
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, syncErr := s.SyncWeek(ctx, key)
			mu.Lock()
			defer mu.Unlock()
			if syncErr != nil {
				s.logger.ErrorContext(ctx, "week sync failed", "week", string(key), "error", syncErr)
				out.FailedCount++
				out.Weeks[i] = WeekSyncResult{WeekKey: key}
				return
			}
			out.SuccessCount++
			out.Weeks[i] = row
		}); err != nil {
			workers.Done()
			return SyncResult{}, fmt.Errorf("submit sync task: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func (s *ResultSyncService) starterSlots(ctx context.Context, key week.Key) ([]PlayerSlot, error) {
	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get week state: %w", err)
	}
	if !ok {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var out []PlayerSlot
	for _, r := range state.Rosters {
		for _, playerID := range r.StarterIDs() {
			if _, dup := seen[playerID]; dup {
				continue
			}
			seen[playerID] = struct{}{}

			slot := PlayerSlot{PlayerID: playerID}
			if day, ok := r.ActiveAltDay(playerID); ok {
				slot.AltDay = day
			}
			out = append(out, slot)
		}
	}
	return out, nil
}
