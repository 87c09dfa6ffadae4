package scoring

import "time"

// Points stores the league's point values. All overridable through config.
type Points struct {
	GamePick int
	Goal     int
	Assist   int
}

func DefaultPoints() Points {
	return Points{
		GamePick: 1,
		Goal:     2,
		Assist:   1,
	}
}

// Breakdown is one team's weekly score. A pure projection over picks, game
// winners, rosters and player stats; recomputable at any time.
type Breakdown struct {
	PickPoints int
	Goals      int
	Assists    int
	Total      int
}

// Standing is one row of the weekly table. Teams sort by descending total;
// ties break by ascending team ID.
type Standing struct {
	Rank   int
	TeamID string
	Score  Breakdown
}

// Result is a persisted score computation for a week.
type Result struct {
	Scores     map[string]Breakdown
	ComputedAt time.Time
}
