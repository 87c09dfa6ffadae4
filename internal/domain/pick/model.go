package pick

import (
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
)

// Slate is the fixed subset of a week's games eligible for outcome picks.
// Immutable once built.
type Slate struct {
	GameIDs []string
	BuiltAt time.Time
}

func (s Slate) Empty() bool {
	return len(s.GameIDs) == 0
}

func (s Slate) Contains(gameID string) bool {
	for _, id := range s.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}

// Ledger records one team's winner picks keyed by game ID. Last write wins.
type Ledger map[string]game.Outcome

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for id, outcome := range l {
		out[id] = outcome
	}
	return out
}
