package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

type syncResultsRequest struct {
	Weeks      []string `json:"weeks" validate:"required,min=1,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=32"`
}

type syncWeekDTO struct {
	Week          string `json:"week"`
	ResolvedGames int    `json:"resolvedGames"`
	StatLines     int    `json:"statLines"`
	ComputedAt    string `json:"computedAt"`
}

type syncResultsDTO struct {
	WeekCount    int           `json:"weekCount"`
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
	WorkerCount  int           `json:"workerCount"`
	Weeks        []syncWeekDTO `json:"weeks"`
}

func (h *Handler) ComputeWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeWeekScores")
	defer span.End()

	key, err := h.weekService.ResolveKey(r.PathValue("weekKey"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.Compute(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "compute scores failed", "week", string(key), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(result))
}

func (h *Handler) SyncResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncResults")
	defer span.End()

	var req syncResultsRequest
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

	keys := make([]week.Key, 0, len(req.Weeks))
	for _, raw := range req.Weeks {
		key, err := h.weekService.ResolveKey(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		keys = append(keys, key)
	}

	result, err := h.syncService.SyncWeeks(ctx, keys, req.MaxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "result sync failed", "weeks", len(keys), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultToDTO(result))
}

func syncResultToDTO(result usecase.SyncResult) syncResultsDTO {
	out := syncResultsDTO{
		WeekCount:    result.WeekCount,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		WorkerCount:  result.WorkerCount,
		Weeks:        make([]syncWeekDTO, 0, len(result.Weeks)),
	}
	for _, wk := range result.Weeks {
		out.Weeks = append(out.Weeks, syncWeekDTO{
			Week:          string(wk.WeekKey),
			ResolvedGames: wk.ResolvedGames,
			StatLines:     wk.StatLines,
			ComputedAt:    wk.ComputedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
