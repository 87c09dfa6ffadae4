package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/puckpicks/puckpicks/internal/usecase"
)

// Roster size is league configuration, so the count is validated by the
// roster service against its rules rather than pinned here.
type putRosterRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type setStarterRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Starter  *bool  `json:"starter" validate:"required"`
}

type setAlternateDayRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Day      string `json:"day" validate:"required"`
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	roster, err := h.rosterService.GetRoster(ctx, key, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) PutTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutTeamRoster")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req putRosterRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.SetRoster(ctx, key, teamID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "put roster failed", "team_id", teamID, "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) SetTeamStarter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamStarter")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req setStarterRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.SetStarterStatus(ctx, key, teamID, req.PlayerID, *req.Starter)
	if err != nil {
		h.logger.WarnContext(ctx, "set starter failed", "team_id", teamID, "player_id", req.PlayerID, "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}

func (h *Handler) SetTeamAlternateDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamAlternateDay")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req setAlternateDayRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.rosterService.SetAlternateDay(ctx, key, teamID, req.PlayerID, req.Day)
	if err != nil {
		h.logger.WarnContext(ctx, "set alternate day failed", "team_id", teamID, "player_id", req.PlayerID, "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(roster))
}
