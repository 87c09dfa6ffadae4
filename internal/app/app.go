package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	_ "github.com/lib/pq"

	"github.com/puckpicks/puckpicks/external/nhlfeed"
	"github.com/puckpicks/puckpicks/internal/config"
	"github.com/puckpicks/puckpicks/internal/domain/player"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/scoring"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/kvstore"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/memory"
	"github.com/puckpicks/puckpicks/internal/infrastructure/repository/postgres"
	"github.com/puckpicks/puckpicks/internal/interfaces/httpapi"
	"github.com/puckpicks/puckpicks/internal/platform/cache"
	idgen "github.com/puckpicks/puckpicks/internal/platform/id"
	"github.com/puckpicks/puckpicks/internal/platform/kv"
	"github.com/puckpicks/puckpicks/internal/platform/logging"
	"github.com/puckpicks/puckpicks/internal/platform/resilience"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	loc, err := time.LoadLocation(cfg.LeagueTimezone)
	if err != nil {
		return nil, fmt.Errorf("load league timezone: %w", err)
	}

	store, err := newKVStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	weeklyRepo := kvstore.NewWeeklyRepository(store)
	scheduleRepo := kvstore.NewScheduleRepository(store)
	teamRepo, err := memory.NewTeamRepository(memory.SeedTeams())
	if err != nil {
		return nil, fmt.Errorf("seed teams: %w", err)
	}
	playerRepo, err := memory.NewPlayerRepository(memory.SeedPlayers())
	if err != nil {
		return nil, fmt.Errorf("seed players: %w", err)
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// A zero TTL pins entries forever; expire immediately instead.
		cacheTTL = time.Nanosecond
	}

	lock := week.LockPolicy{Weekday: cfg.LockWeekday, Hour: cfg.LockHour, Location: loc}
	if err := lock.Validate(); err != nil {
		return nil, fmt.Errorf("lock policy: %w", err)
	}

	rules := roster.Rules{
		RosterSize: map[player.Position]int{
			player.PositionForward: cfg.RosterForwards,
			player.PositionDefense: cfg.RosterDefense,
		},
		Starters: map[player.Position]int{
			player.PositionForward: cfg.StarterForwards,
			player.PositionDefense: cfg.StarterDefense,
		},
	}
	points := scoring.Points{
		GamePick: cfg.PointsPick,
		Goal:     cfg.PointsGoal,
		Assist:   cfg.PointsAssist,
	}

	weekSvc := usecase.NewWeekService(lock)
	scheduleSvc := usecase.NewScheduleService(scheduleRepo, cache.NewStore(cacheTTL), loc)
	rosterSvc := usecase.NewRosterService(weekSvc, weeklyRepo, playerRepo, teamRepo, rules)
	pickSvc := usecase.NewPickService(weekSvc, weeklyRepo, scheduleSvc, teamRepo, cfg.PickSlateSize)
	matchupSvc := usecase.NewMatchupService(weeklyRepo, teamRepo, idgen.NewRandomGenerator())
	scoringSvc := usecase.NewScoringService(weeklyRepo, scheduleSvc, points)
	syncSvc := usecase.NewResultSyncService(newResultFeed(cfg, logger), scheduleSvc, scoringSvc, weeklyRepo, logger)

	handler := httpapi.NewHandler(
		weekSvc,
		scheduleSvc,
		rosterSvc,
		pickSvc,
		matchupSvc,
		scoringSvc,
		syncSvc,
		teamRepo,
		playerRepo,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// newKVStore picks the durability backend: postgres when DB_URL is set,
// in-process memory otherwise.
func newKVStore(cfg config.Config, logger *logging.Logger) (kv.Store, error) {
	if cfg.DBURL == "" {
		logger.Info("kv store backend", "backend", "memory")
		return kv.NewMemory(), nil
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("kv store backend", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
	return postgres.NewKVStore(db), nil
}

// newResultFeed wires the upstream results client, or the deterministic
// simulator when no feed is configured.
func newResultFeed(cfg config.Config, logger *logging.Logger) usecase.ResultFeed {
	if !cfg.FeedEnabled {
		logger.Info("results feed backend", "backend", "simulator", "seed", cfg.FeedSimulatorSeed)
		return nhlfeed.NewSimulator(uint64(cfg.FeedSimulatorSeed))
	}

	logger.Info("results feed backend", "backend", "http", "base_url", cfg.FeedBaseURL)
	return nhlfeed.NewClient(nhlfeed.ClientConfig{
		BaseURL:     cfg.FeedBaseURL,
		Token:       cfg.FeedToken,
		Timeout:     cfg.FeedTimeout,
		MaxRetries:  cfg.FeedMaxRetries,
		MaxParallel: cfg.FeedMaxParallel,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
}
