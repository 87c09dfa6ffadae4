package httpapi

import (
	"net/http"
)

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	info, err := h.weekService.Current()
	if err != nil {
		h.logger.ErrorContext(ctx, "get current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(info))
}

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekSchedule")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scheduleService.GetWeek(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get week schedule failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(games))
}

func (h *Handler) GetWeekSlate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekSlate")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	slate, err := h.pickService.Slate(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get week slate failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slateToDTO(slate))
}

func (h *Handler) GetWeekMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekMatchups")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchups, err := h.matchupService.Matchups(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get week matchups failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupsToDTO(matchups))
}

func (h *Handler) GetWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekScores")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.Scores(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get week scores failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(result))
}

func (h *Handler) GetWeekStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekStandings")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.scoringService.Standings(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get week standings failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}
