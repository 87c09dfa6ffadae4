package weekly

import (
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/matchup"
	"github.com/puckpicks/puckpicks/internal/domain/pick"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
)

// State is the per-week aggregate. It exclusively owns every week-scoped
// container; no other component persists week state independently.
type State struct {
	WeekKey   week.Key
	Rosters   map[string]roster.WeeklyRoster
	Slate     pick.Slate
	Picks     map[string]pick.Ledger
	Matchups  []matchup.Matchup
	Stats     map[string]stats.PlayerWeekStat
	Scores    *scoring.Result
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewState(key week.Key, now time.Time) State {
	return State{
		WeekKey:   key,
		Rosters:   make(map[string]roster.WeeklyRoster),
		Picks:     make(map[string]pick.Ledger),
		Stats:     make(map[string]stats.PlayerWeekStat),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s State) Clone() State {
	copied := s
	copied.Rosters = make(map[string]roster.WeeklyRoster, len(s.Rosters))
	for teamID, r := range s.Rosters {
		copied.Rosters[teamID] = r.Clone()
	}
	copied.Slate.GameIDs = append([]string(nil), s.Slate.GameIDs...)
	copied.Picks = make(map[string]pick.Ledger, len(s.Picks))
	for teamID, ledger := range s.Picks {
		copied.Picks[teamID] = ledger.Clone()
	}
	copied.Matchups = append([]matchup.Matchup(nil), s.Matchups...)
	copied.Stats = make(map[string]stats.PlayerWeekStat, len(s.Stats))
	for playerID, st := range s.Stats {
		copied.Stats[playerID] = st.Clone()
	}
	if s.Scores != nil {
		scores := scoring.Result{
			Scores:     make(map[string]scoring.Breakdown, len(s.Scores.Scores)),
			ComputedAt: s.Scores.ComputedAt,
		}
		for teamID, b := range s.Scores.Scores {
			scores.Scores[teamID] = b
		}
		copied.Scores = &scores
	}
	return copied
}
