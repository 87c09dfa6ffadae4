package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
)

// ScoringService computes weekly team scores. Scoring is a pure projection
// over picks, game winners, rosters and player stats; Compute persists a
// snapshot, and recomputing after new results lands on the same inputs
// yields the same totals.
type ScoringService struct {
	weeklyRepo weekly.Repository
	schedules  *ScheduleService
	points     scoring.Points
	now        func() time.Time
}

func NewScoringService(weeklyRepo weekly.Repository, schedules *ScheduleService, points scoring.Points) *ScoringService {
	return &ScoringService{
		weeklyRepo: weeklyRepo,
		schedules:  schedules,
		points:     points,
		now:        time.Now,
	}
}

// Score projects team breakdowns from week state and the resolved games.
// Unresolved games award nothing; only starters contribute goals and assists.
func (s *ScoringService) Score(state weekly.State, games []game.Game) map[string]scoring.Breakdown {
	winners := make(map[string]game.Outcome, len(games))
	for _, g := range games {
		if g.Resolved() {
			winners[g.ID] = *g.Winner
		}
	}

	teamIDs := make(map[string]struct{}, len(state.Rosters))
	for teamID := range state.Rosters {
		teamIDs[teamID] = struct{}{}
	}
	for teamID := range state.Picks {
		teamIDs[teamID] = struct{}{}
	}

	out := make(map[string]scoring.Breakdown, len(teamIDs))
	for teamID := range teamIDs {
		b := scoring.Breakdown{}

		for gameID, picked := range state.Picks[teamID] {
			winner, resolved := winners[gameID]
			if resolved && winner == picked {
				b.PickPoints += s.points.GamePick
			}
		}

		if r, ok := state.Rosters[teamID]; ok {
			for _, playerID := range r.StarterIDs() {
				st, ok := state.Stats[playerID]
				if !ok {
					continue
				}
				b.Goals += st.Goals
				b.Assists += st.Assists
			}
		}

		b.Total = b.PickPoints + b.Goals*s.points.Goal + b.Assists*s.points.Assist
		out[teamID] = b
	}

	return out
}

// Compute scores the week from current state and persists the snapshot.
func (s *ScoringService) Compute(ctx context.Context, key week.Key) (scoring.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.Compute")
	defer span.End()

	if err := key.Validate(); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	games, err := s.schedules.GetWeek(ctx, key)
	if err != nil {
		return scoring.Result{}, err
	}

	var out scoring.Result
	err = s.weeklyRepo.Update(ctx, key, func(state *weekly.State) error {
		out = scoring.Result{
			Scores:     s.Score(*state, games),
			ComputedAt: s.now(),
		}
		state.Scores = &out
		return nil
	})
	if err != nil {
		return scoring.Result{}, fmt.Errorf("compute scores: %w", err)
	}

	return out, nil
}

// Scores returns the last computed snapshot, computing one if absent.
func (s *ScoringService) Scores(ctx context.Context, key week.Key) (scoring.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.Scores")
	defer span.End()

	if err := key.Validate(); err != nil {
		return scoring.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, ok, err := s.weeklyRepo.Get(ctx, key)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("get week state: %w", err)
	}
	if ok && state.Scores != nil {
		return *state.Scores, nil
	}

	return s.Compute(ctx, key)
}

// Standings ranks teams by descending total; ties break by ascending team
// ID so the table is stable across recomputes.
func (s *ScoringService) Standings(ctx context.Context, key week.Key) ([]scoring.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.Standings")
	defer span.End()

	result, err := s.Scores(ctx, key)
	if err != nil {
		return nil, err
	}

	out := make([]scoring.Standing, 0, len(result.Scores))
	for teamID, b := range result.Scores {
		out = append(out, scoring.Standing{TeamID: teamID, Score: b})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score.Total != out[j].Score.Total {
			return out[i].Score.Total > out[j].Score.Total
		}
		return out[i].TeamID < out[j].TeamID
	})
	for i := range out {
		out[i].Rank = i + 1
	}

	return out, nil
}
