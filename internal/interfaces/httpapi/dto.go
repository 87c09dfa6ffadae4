package httpapi

import (
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/matchup"
	"github.com/puckpicks/puckpicks/internal/domain/pick"
	"github.com/puckpicks/puckpicks/internal/domain/player"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/team"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

type weekDTO struct {
	WeekKey string    `json:"week_key"`
	LockAt  time.Time `json:"lock_at"`
	Locked  bool      `json:"locked"`
}

func weekToDTO(info usecase.WeekInfo) weekDTO {
	return weekDTO{
		WeekKey: string(info.Key),
		LockAt:  info.LockAt,
		Locked:  info.Locked,
	}
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamDTO{ID: t.ID, Name: t.Name, OwnerID: t.OwnerID})
	}
	return out
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	NHLTeam  string `json:"nhl_team"`
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{
			ID:       p.ID,
			Name:     p.Name,
			Position: string(p.Position),
			NHLTeam:  p.NHLTeam,
		})
	}
	return out
}

type gameDTO struct {
	ID      string    `json:"id"`
	Date    string    `json:"date"`
	Home    string    `json:"home"`
	Away    string    `json:"away"`
	StartAt time.Time `json:"start_at"`
	Winner  *string   `json:"winner,omitempty"`
}

func gamesToDTO(games []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(games))
	for _, g := range games {
		dto := gameDTO{
			ID:      g.ID,
			Date:    g.Date,
			Home:    g.Home,
			Away:    g.Away,
			StartAt: g.StartAt,
		}
		if g.Winner != nil {
			winner := string(*g.Winner)
			dto.Winner = &winner
		}
		out = append(out, dto)
	}
	return out
}

type slateDTO struct {
	GameIDs []string  `json:"game_ids"`
	BuiltAt time.Time `json:"built_at"`
}

func slateToDTO(s pick.Slate) slateDTO {
	return slateDTO{GameIDs: s.GameIDs, BuiltAt: s.BuiltAt}
}

type rosterDTO struct {
	TeamID    string            `json:"team_id"`
	Forwards  []string          `json:"starter_forwards"`
	Defense   []string          `json:"starter_defense"`
	Bench     []string          `json:"bench"`
	AltDay    map[string]string `json:"alt_day,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func rosterToDTO(r roster.WeeklyRoster) rosterDTO {
	altDay := make(map[string]string)
	for _, playerID := range r.StarterIDs() {
		if day, ok := r.ActiveAltDay(playerID); ok {
			altDay[playerID] = string(day)
		}
	}
	if len(altDay) == 0 {
		altDay = nil
	}

	return rosterDTO{
		TeamID:    r.TeamID,
		Forwards:  r.Starters.Forwards,
		Defense:   r.Starters.Defense,
		Bench:     r.Bench,
		AltDay:    altDay,
		UpdatedAt: r.UpdatedAt,
	}
}

type matchupDTO struct {
	ID         string `json:"id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id,omitempty"`
	Bye        bool   `json:"bye"`
}

func matchupsToDTO(matchups []matchup.Matchup) []matchupDTO {
	out := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		out = append(out, matchupDTO{
			ID:         m.ID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			Bye:        m.Bye(),
		})
	}
	return out
}

type breakdownDTO struct {
	PickPoints int `json:"pick_points"`
	Goals      int `json:"goals"`
	Assists    int `json:"assists"`
	Total      int `json:"total"`
}

func breakdownToDTO(b scoring.Breakdown) breakdownDTO {
	return breakdownDTO{
		PickPoints: b.PickPoints,
		Goals:      b.Goals,
		Assists:    b.Assists,
		Total:      b.Total,
	}
}

type scoresDTO struct {
	Scores     map[string]breakdownDTO `json:"scores"`
	ComputedAt time.Time               `json:"computed_at"`
}

func scoresToDTO(result scoring.Result) scoresDTO {
	out := scoresDTO{
		Scores:     make(map[string]breakdownDTO, len(result.Scores)),
		ComputedAt: result.ComputedAt,
	}
	for teamID, b := range result.Scores {
		out.Scores[teamID] = breakdownToDTO(b)
	}
	return out
}

type standingDTO struct {
	Rank   int          `json:"rank"`
	TeamID string       `json:"team_id"`
	Score  breakdownDTO `json:"score"`
}

func standingsToDTO(standings []scoring.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		out = append(out, standingDTO{
			Rank:   s.Rank,
			TeamID: s.TeamID,
			Score:  breakdownToDTO(s.Score),
		})
	}
	return out
}

type picksDTO struct {
	TeamID string            `json:"team_id"`
	Picks  map[string]string `json:"picks"`
}

func picksToDTO(teamID string, ledger pick.Ledger) picksDTO {
	out := picksDTO{
		TeamID: teamID,
		Picks:  make(map[string]string, len(ledger)),
	}
	for gameID, outcome := range ledger {
		out.Picks[gameID] = string(outcome)
	}
	return out
}
