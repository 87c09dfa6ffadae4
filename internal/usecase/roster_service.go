package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/player"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/team"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
)

// RosterService manages per-week rosters: the full squad load plus the
// locked-gated starter and alternate-day mutations.
type RosterService struct {
	weeks      *WeekService
	weeklyRepo weekly.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	rules      roster.Rules
	now        func() time.Time
}

func NewRosterService(
	weeks *WeekService,
	weeklyRepo weekly.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	rules roster.Rules,
) *RosterService {
	return &RosterService{
		weeks:      weeks,
		weeklyRepo: weeklyRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		rules:      rules,
		now:        time.Now,
	}
}

// SetRoster replaces a team's weekly roster with the given draft. The full
// load is a league-admin operation and is not lock-gated; per-player
// mutations are.
func (s *RosterService) SetRoster(ctx context.Context, key week.Key, teamID string, playerIDs []string) (roster.WeeklyRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SetRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if err := key.Validate(); err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.requireTeam(ctx, teamID); err != nil {
		return roster.WeeklyRoster{}, err
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("get players by ids: %w", err)
	}
	if len(players) != len(playerIDs) {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: some players do not exist", ErrInvalidInput)
	}

	built, err := roster.Build(teamID, players, s.rules, s.now())
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		state.Rosters[teamID] = built
		return nil
	})
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("save roster: %w", err)
	}

	return built, nil
}

func (s *RosterService) GetRoster(ctx context.Context, key week.Key, teamID string) (roster.WeeklyRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetRoster")
	defer span.End()

	if err := key.Validate(); err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("get week state: %w", err)
	}
	if !ok {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: week=%s", ErrNotFound, key)
	}

	r, ok := state.Rosters[teamID]
	if !ok {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: roster for team=%s week=%s", ErrNotFound, teamID, key)
	}
	return r, nil
}

// SetStarterStatus promotes a bench player or demotes a starter. Frozen once
// the week locks.
func (s *RosterService) SetStarterStatus(ctx context.Context, key week.Key, teamID, playerID string, starter bool) (roster.WeeklyRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SetStarterStatus")
	defer span.End()

	if err := key.Validate(); err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.weeks.requireUnlocked(key); err != nil {
		return roster.WeeklyRoster{}, err
	}

	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("get player by id: %w", err)
	}
	if !ok {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: unknown player %s", ErrInvalidInput, playerID)
	}

	var out roster.WeeklyRoster
	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		r, ok := state.Rosters[teamID]
		if !ok {
			return fmt.Errorf("%w: roster for team=%s week=%s", ErrNotFound, teamID, key)
		}
		if !containsID(r.PlayerIDs(), playerID) {
			return fmt.Errorf("%w: player %s is not on the roster", ErrInvalidInput, playerID)
		}

		if starter {
			if err := roster.Promote(&r, p, s.rules); err != nil {
				return err
			}
		} else {
			roster.Demote(&r, p)
		}
		r.UpdatedAt = s.now()
		state.Rosters[teamID] = r
		out = r
		return nil
	})
	if err != nil {
		return roster.WeeklyRoster{}, err
	}

	return out, nil
}

// SetAlternateDay points a starter at a weekday other than Saturday for stat
// accrual. Only starters carry an active alternate day.
func (s *RosterService) SetAlternateDay(ctx context.Context, key week.Key, teamID, playerID, dayLabel string) (roster.WeeklyRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.SetAlternateDay")
	defer span.End()

	if err := key.Validate(); err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.weeks.requireUnlocked(key); err != nil {
		return roster.WeeklyRoster{}, err
	}

	day, err := roster.ParseAltDay(dayLabel)
	if err != nil {
		return roster.WeeklyRoster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out roster.WeeklyRoster
	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		r, ok := state.Rosters[teamID]
		if !ok {
			return fmt.Errorf("%w: roster for team=%s week=%s", ErrNotFound, teamID, key)
		}
		if !r.IsStarter(playerID) {
			return fmt.Errorf("%w: %s", ErrNotAStarter, playerID)
		}

		if r.AltDay == nil {
			r.AltDay = make(map[string]roster.Weekday)
		}
		r.AltDay[playerID] = day
		r.UpdatedAt = s.now()
		state.Rosters[teamID] = r
		out = r
		return nil
	})
	if err != nil {
		return roster.WeeklyRoster{}, err
	}

	return out, nil
}

func (s *RosterService) requireTeam(ctx context.Context, teamID string) error {
	_, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
