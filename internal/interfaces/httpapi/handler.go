package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/puckpicks/puckpicks/internal/domain/player"
	"github.com/puckpicks/puckpicks/internal/domain/team"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

type Handler struct {
	weekService     *usecase.WeekService
	scheduleService *usecase.ScheduleService
	rosterService   *usecase.RosterService
	pickService     *usecase.PickService
	matchupService  *usecase.MatchupService
	scoringService  *usecase.ScoringService
	syncService     *usecase.ResultSyncService
	teamRepo        team.Repository
	playerRepo      player.Repository
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	weekService *usecase.WeekService,
	scheduleService *usecase.ScheduleService,
	rosterService *usecase.RosterService,
	pickService *usecase.PickService,
	matchupService *usecase.MatchupService,
	scoringService *usecase.ScoringService,
	syncService *usecase.ResultSyncService,
	teamRepo team.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		weekService:     weekService,
		scheduleService: scheduleService,
		rosterService:   rosterService,
		pickService:     pickService,
		matchupService:  matchupService,
		scoringService:  scoringService,
		syncService:     syncService,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}
