package matchup

import "fmt"

// Matchup pairs two teams' weekly totals head to head. An empty AwayTeamID
// marks a bye.
type Matchup struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
}

func (m Matchup) Bye() bool {
	return m.AwayTeamID == ""
}

// Pair builds head-to-head matchups by pairing teams sequentially in the
// supplied order (0 vs 1, 2 vs 3, ...). An odd team count yields exactly one
// trailing bye.
func Pair(teamIDs []string, newID func() (string, error)) ([]Matchup, error) {
	out := make([]Matchup, 0, (len(teamIDs)+1)/2)
	for i := 0; i < len(teamIDs); i += 2 {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("generate matchup id: %w", err)
		}

		m := Matchup{ID: id, HomeTeamID: teamIDs[i]}
		if i+1 < len(teamIDs) {
			m.AwayTeamID = teamIDs[i+1]
		}
		out = append(out, m)
	}

	return out, nil
}
