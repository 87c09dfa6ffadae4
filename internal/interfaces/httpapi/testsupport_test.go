package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/kvstore"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/memory"
	"github.com/puckpicks/puckpicks/internal/platform/cache"
	"github.com/puckpicks/puckpicks/internal/platform/id"
	"github.com/puckpicks/puckpicks/internal/platform/kv"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

// A far-future Monday so tests never collide with the real lock instant.
const testWeekKey = "2030-01-07"

const testJobToken = "test-job-token"

type stubFeed struct {
	winners map[string]game.Outcome
	lines   []stats.StatLine
}

func (f *stubFeed) Winners(_ context.Context, _ week.Key, games []game.Game) (map[string]game.Outcome, error) {
	out := make(map[string]game.Outcome, len(games))
	for _, g := range games {
		if outcome, ok := f.winners[g.ID]; ok {
			out[g.ID] = outcome
		}
	}
	return out, nil
}

func (f *stubFeed) PlayerStats(_ context.Context, _ week.Key, _ []usecase.PlayerSlot) ([]stats.StatLine, error) {
	return f.lines, nil
}

func newTestRouter(t *testing.T, feed usecase.ResultFeed) http.Handler {
	t.Helper()

	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load league timezone: %v", err)
	}

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

	weeks := usecase.NewWeekService(lock)
	schedules := usecase.NewScheduleService(scheduleRepo, cache.NewStore(time.Minute), loc)
	rosters := usecase.NewRosterService(weeks, weeklyRepo, playerRepo, teamRepo, roster.DefaultRules())
	picks := usecase.NewPickService(weeks, weeklyRepo, schedules, teamRepo, 30)
	matchups := usecase.NewMatchupService(weeklyRepo, teamRepo, id.NewRandomGenerator())
	scoringSvc := usecase.NewScoringService(weeklyRepo, schedules, scoring.DefaultPoints())

	if feed == nil {
		feed = &stubFeed{}
	}
	sync := usecase.NewResultSyncService(feed, schedules, scoringSvc, weeklyRepo, logging.NewNop())

	handler := NewHandler(weeks, schedules, rosters, picks, matchups, scoringSvc, sync, teamRepo, playerRepo, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, payload []byte) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(payload, &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func envelopeData(t *testing.T, payload []byte) map[string]any {
	t.Helper()

	body := decodeEnvelope(t, payload)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}
