package usecase

import (
	"context"
	"fmt"

	"github.com/puckpicks/puckpicks/internal/domain/matchup"
	"github.com/puckpicks/puckpicks/internal/domain/team"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
	"github.com/puckpicks/puckpicks/internal/platform/id"
)

// MatchupService pairs registered teams head to head for a week. Pairing is
// sequential in registration order; an odd team count leaves one bye.
type MatchupService struct {
	weeklyRepo weekly.Repository
	teamRepo   team.Repository
	idGen      id.Generator
}

func NewMatchupService(weeklyRepo weekly.Repository, teamRepo team.Repository, idGen id.Generator) *MatchupService {
	return &MatchupService{
		weeklyRepo: weeklyRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
	}
}

// EnsureMatchups builds the week's pairings if absent and returns them.
func (s *MatchupService) EnsureMatchups(ctx context.Context, key week.Key) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchupService.EnsureMatchups")
	defer span.End()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	var out []matchup.Matchup
	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		if len(state.Matchups) > 0 {
			out = state.Matchups
			return nil
		}

		paired, err := matchup.Pair(teamIDs, s.idGen.NewID)
		if err != nil {
			return err
		}
		state.Matchups = paired
		out = paired
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ensure matchups: %w", err)
	}

	return out, nil
}

func (s *MatchupService) Matchups(ctx context.Context, key week.Key) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchupService.Matchups")
	defer span.End()

	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get week state: %w", err)
	}
	if ok && len(state.Matchups) > 0 {
		return state.Matchups, nil
	}

	return s.EnsureMatchups(ctx, key)
}
