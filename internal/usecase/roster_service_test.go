package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/puckpicks/puckpicks/internal/domain/roster"
)

func TestRosterService_SetRoster(t *testing.T) {
	env := newTestEnv(t)

	r, err := env.rosters.SetRoster(t.Context(), testWeekKey, "t1", seedPlayerIDs())
	if err != nil {
		t.Fatalf("set roster: %v", err)
	}
	if len(r.Starters.Forwards) != 3 || len(r.Starters.Defense) != 2 {
		t.Fatalf("starters = %dF/%dD, want 3F/2D", len(r.Starters.Forwards), len(r.Starters.Defense))
	}
	if len(r.Bench) != 5 {
		t.Fatalf("bench size = %d, want 5", len(r.Bench))
	}

	stored, err := env.rosters.GetRoster(t.Context(), testWeekKey, "t1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if len(stored.PlayerIDs()) != 10 {
		t.Fatalf("stored roster has %d players, want 10", len(stored.PlayerIDs()))
	}
}

func TestRosterService_SetRoster_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	ids := seedPlayerIDs()

	// Seed a valid roster first; every rejection below must leave it intact.
	seeded, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", ids)
	if err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	tests := []struct {
		name    string
		teamID  string
		players []string
		wantErr error
	}{
		{name: "unknown team", teamID: "t99", players: ids, wantErr: ErrNotFound},
		{name: "too few players", teamID: "t1", players: ids[:9], wantErr: roster.ErrWrongPositionCount},
		{name: "unknown player", teamID: "t1", players: append(append([]string(nil), ids[:9]...), "p99"), wantErr: ErrInvalidInput},
		{name: "duplicate player", teamID: "t1", players: append(append([]string(nil), ids[:9]...), ids[0]), wantErr: ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.rosters.SetRoster(ctx, testWeekKey, tc.teamID, tc.players)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}

			stored, err := env.rosters.GetRoster(ctx, testWeekKey, "t1")
			if err != nil {
				t.Fatalf("get roster after rejection: %v", err)
			}
			if !reflect.DeepEqual(stored.Starters, seeded.Starters) || !reflect.DeepEqual(stored.Bench, seeded.Bench) {
				t.Fatalf("rejected load mutated the stored roster: %+v", stored)
			}
		})
	}
}

func TestRosterService_SetRoster_NotLockGated(t *testing.T) {
	env := newTestEnv(t)
	env.lockWeek()

	// The bulk load is a league-admin operation and stays open past the lock.
	if _, err := env.rosters.SetRoster(t.Context(), testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("set roster after lock: %v", err)
	}
}

func TestRosterService_SetStarterStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	// Demote a starting forward, then the freed slot accepts a bench forward.
	r, err := env.rosters.SetStarterStatus(ctx, testWeekKey, "t1", "p1", false)
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if r.IsStarter("p1") {
		t.Fatal("p1 must be benched after demote")
	}

	r, err = env.rosters.SetStarterStatus(ctx, testWeekKey, "t1", "p4", true)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !r.IsStarter("p4") {
		t.Fatal("p4 must start after promote")
	}

	// Forward quota is full again; promoting another forward fails.
	_, err = env.rosters.SetStarterStatus(ctx, testWeekKey, "t1", "p5", true)
	if !errors.Is(err, roster.ErrStarterQuotaFull) {
		t.Fatalf("expected ErrStarterQuotaFull, got %v", err)
	}
}

func TestRosterService_SetStarterStatus_LockedWeek(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	env.lockWeek()

	_, err := env.rosters.SetStarterStatus(ctx, testWeekKey, "t1", "p1", false)
	if !errors.Is(err, ErrLockedWeek) {
		t.Fatalf("expected ErrLockedWeek, got %v", err)
	}
}

func TestRosterService_SetAlternateDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	r, err := env.rosters.SetAlternateDay(ctx, testWeekKey, "t1", "p1", "Wed")
	if err != nil {
		t.Fatalf("set alternate day: %v", err)
	}
	if day, ok := r.ActiveAltDay("p1"); !ok || day != roster.Wednesday {
		t.Fatalf("active alt day = %v/%v, want Wed", day, ok)
	}

	// Bench players never carry an active alternate day.
	_, err = env.rosters.SetAlternateDay(ctx, testWeekKey, "t1", "p4", "Tue")
	if !errors.Is(err, ErrNotAStarter) {
		t.Fatalf("expected ErrNotAStarter, got %v", err)
	}

	_, err = env.rosters.SetAlternateDay(ctx, testWeekKey, "t1", "p1", "Sat")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("saturday label must be invalid, got %v", err)
	}
}

func TestRosterService_DemoteHidesAlternateDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.rosters.SetRoster(ctx, testWeekKey, "t1", seedPlayerIDs()); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	if _, err := env.rosters.SetAlternateDay(ctx, testWeekKey, "t1", "p1", "Thu"); err != nil {
		t.Fatalf("set alternate day: %v", err)
	}

	r, err := env.rosters.SetStarterStatus(ctx, testWeekKey, "t1", "p1", false)
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if _, ok := r.ActiveAltDay("p1"); ok {
		t.Fatal("demoted player must not expose an active alternate day")
	}
}
