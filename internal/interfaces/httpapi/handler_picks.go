package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

type setPickRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=HOME AWAY"`
}

func (h *Handler) GetTeamPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPicks")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	picks, err := h.pickService.Picks(ctx, key, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(teamID, picks))
}

func (h *Handler) PutTeamPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutTeamPick")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.URL.Query().Get("week"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req setPickRequest
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

	if err := h.pickService.SetPick(ctx, key, teamID, gameID, game.Outcome(req.Outcome)); err != nil {
		h.logger.WarnContext(ctx, "set pick failed", "team_id", teamID, "game_id", gameID, "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.Picks(ctx, key, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(teamID, picks))
}
