package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/week", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/week/{weekKey}/schedule", handler.GetWeekSchedule)
	mux.HandleFunc("GET /v1/week/{weekKey}/slate", handler.GetWeekSlate)
	mux.HandleFunc("GET /v1/week/{weekKey}/matchups", handler.GetWeekMatchups)
	mux.HandleFunc("GET /v1/week/{weekKey}/scores", handler.GetWeekScores)
	mux.HandleFunc("GET /v1/week/{weekKey}/standings", handler.GetWeekStandings)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/roster", handler.GetTeamRoster)
	mux.HandleFunc("PUT /v1/teams/{teamID}/roster", handler.PutTeamRoster)
	mux.HandleFunc("POST /v1/teams/{teamID}/starters", handler.SetTeamStarter)
	mux.HandleFunc("POST /v1/teams/{teamID}/alternate-day", handler.SetTeamAlternateDay)
	mux.HandleFunc("GET /v1/teams/{teamID}/picks", handler.GetTeamPicks)
	mux.HandleFunc("PUT /v1/teams/{teamID}/picks/{gameID}", handler.PutTeamPick)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/scores/{weekKey}/compute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ComputeWeekScores)))
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncResults)))
}
