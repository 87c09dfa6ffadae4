package usecase

import (
	"testing"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
)

func TestScoringService_Compute(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	slate, err := env.picks.EnsureSlate(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("ensure slate: %v", err)
	}

	// Seven picks, five of which will match the resolved winner.
	for i := 0; i < 7; i++ {
		if err := env.picks.SetPick(ctx, testWeekKey, "t1", slate.GameIDs[i], game.OutcomeHome); err != nil {
			t.Fatalf("set pick %d: %v", i, err)
		}
	}
	for i := 0; i < 7; i++ {
		outcome := game.OutcomeHome
		if i >= 5 {
			outcome = game.OutcomeAway
		}
		if err := env.schedules.ResolveWinner(ctx, testWeekKey, slate.GameIDs[i], outcome); err != nil {
			t.Fatalf("resolve winner %d: %v", i, err)
		}
	}

	// Production: a starting forward with two goals, a starting defenseman
	// with one assist, and a benched player whose stats must not count.
	err = env.weekly.Update(ctx, testWeekKey, func(state *weekly.State) error {
		state.Stats["p1"] = stats.PlayerWeekStat{Goals: 2}
		state.Stats["p7"] = stats.PlayerWeekStat{Assists: 1}
		state.Stats["p4"] = stats.PlayerWeekStat{Goals: 5, Assists: 5}
		return nil
	})
	if err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	result, err := env.scoring.Compute(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	b := result.Scores["t1"]
	if b.PickPoints != 5 {
		t.Fatalf("pick points = %d, want 5", b.PickPoints)
	}
	if b.Goals != 2 || b.Assists != 1 {
		t.Fatalf("production = %dg/%da, want 2g/1a", b.Goals, b.Assists)
	}
	if b.Total != 10 {
		t.Fatalf("total = %d, want 10", b.Total)
	}

	// Recomputing over unchanged inputs yields the same totals.
	again, err := env.scoring.Compute(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if again.Scores["t1"] != b {
		t.Fatalf("recompute changed breakdown: %+v vs %+v", again.Scores["t1"], b)
	}
}

func TestScoringService_Standings(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	slate, err := env.picks.EnsureSlate(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("ensure slate: %v", err)
	}

	// t1 lands two correct picks, t2 one, t3 and t4 tie on zero.
	for i, teamID := range []string{"t1", "t1", "t2"} {
		if err := env.picks.SetPick(ctx, testWeekKey, teamID, slate.GameIDs[i], game.OutcomeHome); err != nil {
			t.Fatalf("set pick: %v", err)
		}
	}
	if err := env.picks.SetPick(ctx, testWeekKey, "t3", slate.GameIDs[3], game.OutcomeAway); err != nil {
		t.Fatalf("set pick: %v", err)
	}
	if err := env.picks.SetPick(ctx, testWeekKey, "t4", slate.GameIDs[4], game.OutcomeAway); err != nil {
		t.Fatalf("set pick: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := env.schedules.ResolveWinner(ctx, testWeekKey, slate.GameIDs[i], game.OutcomeHome); err != nil {
			t.Fatalf("resolve winner: %v", err)
		}
	}

	standings, err := env.scoring.Standings(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 4 {
		t.Fatalf("standings rows = %d, want 4", len(standings))
	}

	wantOrder := []string{"t1", "t2", "t3", "t4"}
	for i, want := range wantOrder {
		if standings[i].TeamID != want {
			t.Fatalf("rank %d = %s, want %s", i+1, standings[i].TeamID, want)
		}
		if standings[i].Rank != i+1 {
			t.Fatalf("rank field = %d, want %d", standings[i].Rank, i+1)
		}
	}
	// The zero-point tie resolves by ascending team ID.
	if standings[2].Score.Total != 0 || standings[3].Score.Total != 0 {
		t.Fatalf("tied teams must both have zero, got %d and %d", standings[2].Score.Total, standings[3].Score.Total)
	}
}
