package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
)

type fakeFeed struct {
	winners    map[string]game.Outcome
	lines      []stats.StatLine
	winnersErr error
	statsErr   error
}

func (f *fakeFeed) Winners(_ context.Context, _ week.Key, _ []game.Game) (map[string]game.Outcome, error) {
	if f.winnersErr != nil {
		return nil, f.winnersErr
	}
	return f.winners, nil
}

func (f *fakeFeed) PlayerStats(_ context.Context, _ week.Key, _ []PlayerSlot) ([]stats.StatLine, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.lines, nil
}

func TestResultSyncService_SyncWeek(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	slate, err := env.picks.EnsureSlate(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("ensure slate: %v", err)
	}
	if err := env.picks.SetPick(ctx, testWeekKey, "t1", slate.GameIDs[0], game.OutcomeHome); err != nil {
		t.Fatalf("set pick: %v", err)
	}

	feed := &fakeFeed{
		winners: map[string]game.Outcome{
			slate.GameIDs[0]: game.OutcomeHome,
			slate.GameIDs[1]: game.OutcomeAway,
		},
		lines: []stats.StatLine{
			{PlayerID: "p1", Date: "2026-01-10", Goals: 1, Assists: 0},
			{PlayerID: "p7", Date: "2026-01-10", Goals: 0, Assists: 2},
		},
	}
	sync := env.newSync(t, feed)

	row, err := sync.SyncWeek(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("sync week: %v", err)
	}
	if row.ResolvedGames != 2 {
		t.Fatalf("resolved games = %d, want 2", row.ResolvedGames)
	}
	if row.StatLines != 2 {
		t.Fatalf("stat lines = %d, want 2", row.StatLines)
	}

	result, err := env.scoring.Scores(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	b := result.Scores["t1"]
	if b.PickPoints != 1 || b.Goals != 1 || b.Assists != 2 {
		t.Fatalf("breakdown = %+v, want 1 pick point, 1g, 2a", b)
	}
}

func TestResultSyncService_SyncWeek_RerunDoesNotDoubleCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	if _, err := env.picks.EnsureSlate(ctx, testWeekKey); err != nil {
		t.Fatalf("ensure slate: %v", err)
	}

	feed := &fakeFeed{
		lines: []stats.StatLine{
			{PlayerID: "p1", Date: "2026-01-10", Goals: 2, Assists: 1},
		},
	}
	sync := env.newSync(t, feed)

	if _, err := sync.SyncWeek(ctx, testWeekKey); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	row, err := sync.SyncWeek(ctx, testWeekKey)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if row.StatLines != 0 {
		t.Fatalf("rerun applied %d stat lines, want 0", row.StatLines)
	}

	state, ok, err := env.weekly.Get(ctx, testWeekKey)
	if err != nil || !ok {
		t.Fatalf("get state: ok=%v err=%v", ok, err)
	}
	if st := state.Stats["p1"]; st.Goals != 2 || st.Assists != 1 {
		t.Fatalf("stats double counted: %+v", st)
	}
}

func TestResultSyncService_SyncWeek_FeedDown(t *testing.T) {
	env := newTestEnv(t)
	sync := env.newSync(t, &fakeFeed{winnersErr: errors.New("connect refused")})

	_, err := sync.SyncWeek(t.Context(), testWeekKey)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestResultSyncService_SyncWeeks(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	keys := []week.Key{"2026-01-05", "2026-01-12"}
	sync := env.newSync(t, &fakeFeed{})

	out, err := sync.SyncWeeks(ctx, keys, 2)
	if err != nil {
		t.Fatalf("sync weeks: %v", err)
	}
	if out.SuccessCount != 2 || out.FailedCount != 0 {
		t.Fatalf("success=%d failed=%d, want 2/0", out.SuccessCount, out.FailedCount)
	}
	if out.Weeks[0].WeekKey != keys[0] || out.Weeks[1].WeekKey != keys[1] {
		t.Fatalf("rows out of order: %+v", out.Weeks)
	}

	if _, err := sync.SyncWeeks(ctx, nil, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty key list: got %v", err)
	}
}
