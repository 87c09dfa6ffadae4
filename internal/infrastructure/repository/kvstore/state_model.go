package kvstore

import (
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/matchup"
	"github.com/puckpicks/puckpicks/internal/domain/pick"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/domain/weekly"
)

type rosterModel struct {
	StarterForwards []string          `json:"starterForwards"`
	StarterDefense  []string          `json:"starterDefense"`
	Bench           []string          `json:"bench"`
	AltDay          map[string]string `json:"altDay,omitempty"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type slateModel struct {
	GameIDs []string  `json:"gameIds"`
	BuiltAt time.Time `json:"builtAt"`
}

type matchupModel struct {
	ID         string `json:"id"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId,omitempty"`
}

type statModel struct {
	Goals       int             `json:"goals"`
	Assists     int             `json:"assists"`
	PlayedDates map[string]bool `json:"playedDates,omitempty"`
}

type breakdownModel struct {
	PickPoints int `json:"pickPoints"`
	Goals      int `json:"goals"`
	Assists    int `json:"assists"`
	Total      int `json:"total"`
}

type scoresModel struct {
	Scores     map[string]breakdownModel `json:"scores"`
	ComputedAt time.Time                 `json:"computedAt"`
}

type weekStateModel struct {
	WeekKey   string                       `json:"weekKey"`
	Rosters   map[string]rosterModel       `json:"rosters"`
	Slate     slateModel                   `json:"slate"`
	Picks     map[string]map[string]string `json:"picks"`
	Matchups  []matchupModel               `json:"matchups,omitempty"`
	Stats     map[string]statModel         `json:"stats"`
	Scores    *scoresModel                 `json:"scores,omitempty"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

type gameModel struct {
	ID      string    `json:"id"`
	Date    string    `json:"date"`
	Home    string    `json:"home"`
	Away    string    `json:"away"`
	StartAt time.Time `json:"startAt"`
	Winner  *string   `json:"winner,omitempty"`
}

func toWeekStateModel(state weekly.State) weekStateModel {
	out := weekStateModel{
		WeekKey:   string(state.WeekKey),
		Rosters:   make(map[string]rosterModel, len(state.Rosters)),
		Slate:     slateModel{GameIDs: state.Slate.GameIDs, BuiltAt: state.Slate.BuiltAt},
		Picks:     make(map[string]map[string]string, len(state.Picks)),
		Stats:     make(map[string]statModel, len(state.Stats)),
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}

	for teamID, r := range state.Rosters {
		altDay := make(map[string]string, len(r.AltDay))
		for playerID, day := range r.AltDay {
			altDay[playerID] = string(day)
		}
		out.Rosters[teamID] = rosterModel{
			StarterForwards: r.Starters.Forwards,
			StarterDefense:  r.Starters.Defense,
			Bench:           r.Bench,
			AltDay:          altDay,
			UpdatedAt:       r.UpdatedAt,
		}
	}

	for teamID, ledger := range state.Picks {
		picks := make(map[string]string, len(ledger))
		for gameID, outcome := range ledger {
			picks[gameID] = string(outcome)
		}
		out.Picks[teamID] = picks
	}

	for _, m := range state.Matchups {
		out.Matchups = append(out.Matchups, matchupModel{
			ID:         m.ID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
		})
	}

	for playerID, st := range state.Stats {
		out.Stats[playerID] = statModel{
			Goals:       st.Goals,
			Assists:     st.Assists,
			PlayedDates: st.PlayedDates,
		}
	}

	if state.Scores != nil {
		scores := scoresModel{
			Scores:     make(map[string]breakdownModel, len(state.Scores.Scores)),
			ComputedAt: state.Scores.ComputedAt,
		}
		for teamID, b := range state.Scores.Scores {
			scores.Scores[teamID] = breakdownModel{
				PickPoints: b.PickPoints,
				Goals:      b.Goals,
				Assists:    b.Assists,
				Total:      b.Total,
			}
		}
		out.Scores = &scores
	}

	return out
}

func fromWeekStateModel(model weekStateModel) weekly.State {
	state := weekly.State{
		WeekKey:   week.Key(model.WeekKey),
		Rosters:   make(map[string]roster.WeeklyRoster, len(model.Rosters)),
		Slate:     pick.Slate{GameIDs: model.Slate.GameIDs, BuiltAt: model.Slate.BuiltAt},
		Picks:     make(map[string]pick.Ledger, len(model.Picks)),
		Stats:     make(map[string]stats.PlayerWeekStat, len(model.Stats)),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	for teamID, r := range model.Rosters {
		altDay := make(map[string]roster.Weekday, len(r.AltDay))
		for playerID, day := range r.AltDay {
			altDay[playerID] = roster.Weekday(day)
		}
		state.Rosters[teamID] = roster.WeeklyRoster{
			TeamID: teamID,
			Starters: roster.Starters{
				Forwards: r.StarterForwards,
				Defense:  r.StarterDefense,
			},
			Bench:     r.Bench,
			AltDay:    altDay,
			UpdatedAt: r.UpdatedAt,
		}
	}

	for teamID, picks := range model.Picks {
		ledger := make(pick.Ledger, len(picks))
		for gameID, outcome := range picks {
			ledger[gameID] = game.Outcome(outcome)
		}
		state.Picks[teamID] = ledger
	}

	for _, m := range model.Matchups {
		state.Matchups = append(state.Matchups, matchup.Matchup{
			ID:         m.ID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
		})
	}

	for playerID, st := range model.Stats {
		state.Stats[playerID] = stats.PlayerWeekStat{
			Goals:       st.Goals,
			Assists:     st.Assists,
			PlayedDates: st.PlayedDates,
		}
	}

	if model.Scores != nil {
		scores := scoring.Result{
			Scores:     make(map[string]scoring.Breakdown, len(model.Scores.Scores)),
			ComputedAt: model.Scores.ComputedAt,
		}
		for teamID, b := range model.Scores.Scores {
			scores.Scores[teamID] = scoring.Breakdown{
				PickPoints: b.PickPoints,
				Goals:      b.Goals,
				Assists:    b.Assists,
				Total:      b.Total,
			}
		}
		state.Scores = &scores
	}

	return state
}

func toGameModels(games []game.Game) []gameModel {
	out := make([]gameModel, 0, len(games))
	for _, g := range games {
		m := gameModel{
			ID:      g.ID,
			Date:    g.Date,
			Home:    g.Home,
			Away:    g.Away,
			StartAt: g.StartAt,
		}
		if g.Winner != nil {
			winner := string(*g.Winner)
			m.Winner = &winner
		}
		out = append(out, m)
	}
	return out
}

func fromGameModels(models []gameModel) []game.Game {
	out := make([]game.Game, 0, len(models))
	for _, m := range models {
		g := game.Game{
			ID:      m.ID,
			Date:    m.Date,
			Home:    m.Home,
			Away:    m.Away,
			StartAt: m.StartAt,
		}
		if m.Winner != nil {
			winner := game.Outcome(*m.Winner)
			g.Winner = &winner
		}
		out = append(out, g)
	}
	return out
}
