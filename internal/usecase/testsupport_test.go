package usecase

import (
	"testing"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/kvstore"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/memory"
	"github.com/puckpicks/puckpicks/internal/platform/cache"
	"github.com/puckpicks/puckpicks/internal/platform/id"
	"github.com/puckpicks/puckpicks/internal/platform/kv"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
)

const testWeekKey = week.Key("2026-01-05")

// testClock pins the engine clock to a mutable instant.
type testClock struct {
	instant time.Time
}

func (c *testClock) Now() time.Time {
	return c.instant
}

type testEnv struct {
	clock     *testClock
	loc       *time.Location
	weeks     *WeekService
	schedules *ScheduleService
	rosters   *RosterService
	picks     *PickService
	matchups  *MatchupService
	scoring   *ScoringService
	weekly    *kvstore.WeeklyRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load league timezone: %v", err)
	}

	// Monday morning of the test week, well before the 17:00 lock.
	clock := &testClock{instant: time.Date(2026, 1, 5, 10, 0, 0, 0, loc)}

	store := kv.NewMemory()
	weeklyRepo := kvstore.NewWeeklyRepository(store)
	scheduleRepo := kvstore.NewScheduleRepository(store)
	playerRepo, err := memory.NewPlayerRepository(memory.SeedPlayers())
	if err != nil {
		t.Fatalf("seed players: %v", err)
	}
	teamRepo, err := memory.NewTeamRepository(memory.SeedTeams())
	if err != nil {
		t.Fatalf("seed teams: %v", err)
	}

	lock := week.LockPolicy{Weekday: time.Monday, Hour: 17, Location: loc}

	weeks := NewWeekService(lock)
	weeks.now = clock.Now

	schedules := NewScheduleService(scheduleRepo, cache.NewStore(time.Minute), loc)

	rosters := NewRosterService(weeks, weeklyRepo, playerRepo, teamRepo, roster.DefaultRules())
	rosters.now = clock.Now

	picks := NewPickService(weeks, weeklyRepo, schedules, teamRepo, 30)
	picks.now = clock.Now

	matchups := NewMatchupService(weeklyRepo, teamRepo, id.NewRandomGenerator())

	scoringSvc := NewScoringService(weeklyRepo, schedules, scoring.DefaultPoints())
	scoringSvc.now = clock.Now

	return &testEnv{
		clock:     clock,
		loc:       loc,
		weeks:     weeks,
		schedules: schedules,
		rosters:   rosters,
		picks:     picks,
		matchups:  matchups,
		scoring:   scoringSvc,
		weekly:    weeklyRepo,
	}
}

func (e *testEnv) lockWeek() {
	e.clock.instant = time.Date(2026, 1, 5, 17, 0, 0, 0, e.loc)
}

func (e *testEnv) newSync(t *testing.T, feed ResultFeed) *ResultSyncService {
	t.Helper()
	return NewResultSyncService(feed, e.schedules, e.scoring, e.weekly, logging.NewNop())
}

func seedPlayerIDs() []string {
	players := memory.SeedPlayers()
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}
