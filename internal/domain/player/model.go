package player

import "fmt"

// Position represents the two skater position groups used by roster rules.
type Position string

const (
	PositionForward Position = "F"
	PositionDefense Position = "D"
)

var AllPositions = map[Position]struct{}{
	PositionForward: {},
	PositionDefense: {},
}

// Player is a draftable skater in the league pool. Reference data, immutable
// from the engine's point of view.
type Player struct {
	ID       string
	Name     string
	Position Position
	NHLTeam  string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.NHLTeam == "" {
		return fmt.Errorf("player nhl team is required")
	}

	return nil
}
