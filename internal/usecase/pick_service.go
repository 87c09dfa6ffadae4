package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/pick"
	"github.com/puckpicks/puckpicks/internal/domain/team"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
)

// PickService owns the weekly pick slate and the per-team pick ledgers. The
// slate is sampled once per week from the stored schedule and never rebuilt.
type PickService struct {
	weeks      *WeekService
	weeklyRepo weekly.Repository
	schedules  *ScheduleService
	teamRepo   team.Repository
	pickCount  int
	now        func() time.Time
	shuffle    func(n int, swap func(i, j int))
}

func NewPickService(
	weeks *WeekService,
	weeklyRepo weekly.Repository,
	schedules *ScheduleService,
	teamRepo team.Repository,
	pickCount int,
) *PickService {
	return &PickService{
		weeks:      weeks,
		weeklyRepo: weeklyRepo,
		schedules:  schedules,
		teamRepo:   teamRepo,
		pickCount:  pickCount,
		now:        time.Now,
		shuffle:    rand.Shuffle,
	}
}

// EnsureSlate builds the week's pick slate if absent and returns it. Weeks
// with fewer schedulable games than the slate size fail outright.
func (s *PickService) EnsureSlate(ctx context.Context, key week.Key) (pick.Slate, error) {
	ctx, span := startUsecaseSpan(ctx, "PickService.EnsureSlate")
	defer span.End()

	if err := key.Validate(); err != nil {
		return pick.Slate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.schedules.GetWeek(ctx, key)
	if err != nil {
		return pick.Slate{}, err
	}
	if len(games) < s.pickCount {
		return pick.Slate{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientGames, s.pickCount, len(games))
	}

	var out pick.Slate
	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		if !state.Slate.Empty() {
			out = state.Slate
			return nil
		}

		ids := make([]string, len(games))
		for i, g := range games {
			ids[i] = g.ID
		}
		s.shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})

		state.Slate = pick.Slate{
			GameIDs: ids[:s.pickCount],
			BuiltAt: s.now(),
		}
		out = state.Slate
		return nil
	})
	if err != nil {
		return pick.Slate{}, fmt.Errorf("ensure slate: %w", err)
	}

	return out, nil
}

func (s *PickService) Slate(ctx context.Context, key week.Key) (pick.Slate, error) {
	ctx, span := startUsecaseSpan(ctx, "PickService.Slate")
	defer span.End()

	if err := key.Validate(); err != nil {
		return pick.Slate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return pick.Slate{}, fmt.Errorf("get week state: %w", err)
	}
	if ok && !state.Slate.Empty() {
		return state.Slate, nil
	}

	return s.EnsureSlate(ctx, key)
}

// SetPick records a team's winner pick for a slate game. Last write wins
// until the week locks.
func (s *PickService) SetPick(ctx context.Context, key week.Key, teamID, gameID string, outcome game.Outcome) error {
	ctx, span := startUsecaseSpan(ctx, "PickService.SetPick")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	gameID = strings.TrimSpace(gameID)
	if teamID == "" || gameID == "" {
		return fmt.Errorf("%w: team_id and game_id are required", ErrInvalidInput)
	}
	if _, ok := game.AllOutcomes[outcome]; !ok {
		return fmt.Errorf("%w: invalid outcome %q", ErrInvalidInput, outcome)
	}
	if err := key.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.weeks.requireUnlocked(key); err != nil {
		return err
	}

	_, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if _, err := s.EnsureSlate(ctx, key); err != nil {
		return err
	}

	return s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		if !state.Slate.Contains(gameID) {
			return fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
		}

		ledger, ok := state.Picks[teamID]
		if !ok {
			ledger = make(pick.Ledger)
			state.Picks[teamID] = ledger
		}
		ledger[gameID] = outcome
		return nil
	})
}

func (s *PickService) Picks(ctx context.Context, key week.Key, teamID string) (pick.Ledger, error) {
	ctx, span := startUsecaseSpan(ctx, "PickService.Picks")
	defer span.End()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get week state: %w", err)
	}
	if !ok {
		return pick.Ledger{}, nil
	}

	ledger, ok := state.Picks[teamID]
	if !ok {
		return pick.Ledger{}, nil
	}
	return ledger.Clone(), nil
}
