package game

import (
	"fmt"
	"time"
)

// Outcome is a resolved game result from the home side's perspective.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeAway Outcome = "AWAY"
)

var AllOutcomes = map[Outcome]struct{}{
	OutcomeHome: {},
	OutcomeAway: {},
}

// Game is one scheduled NHL game inside a league week. Winner stays nil until
// results arrive and is never overwritten once set.
type Game struct {
	ID      string
	Date    string
	Home    string
	Away    string
	StartAt time.Time
	Winner  *Outcome
}

func (g Game) Resolved() bool {
	return g.Winner != nil
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.Date == "" {
		return fmt.Errorf("game date is required")
	}
	if g.Home == "" || g.Away == "" {
		return fmt.Errorf("game home and away teams are required")
	}
	if g.Winner != nil {
		if _, ok := AllOutcomes[*g.Winner]; !ok {
			return fmt.Errorf("invalid game winner: %s", *g.Winner)
		}
	}

	return nil
}
