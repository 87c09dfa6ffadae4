package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/puckpicks/puckpicks/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	DBURL                      string
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	LeagueTimezone             string
	LockWeekday                time.Weekday
	LockHour                   int
	PickSlateSize              int
	RosterForwards             int
	RosterDefense              int
	StarterForwards            int
	StarterDefense             int
	PointsPick                 int
	PointsGoal                 int
	PointsAssist               int
	InternalJobToken           string
	SyncMaxWorkers             int
	FeedEnabled                bool
	FeedBaseURL                string
	FeedToken                  string
	FeedTimeout                time.Duration
	FeedMaxRetries             int
	FeedMaxParallel            int
	FeedCircuitEnabled         bool
	FeedCircuitFailureCount    int
	FeedCircuitOpenTimeout     time.Duration
	FeedCircuitHalfOpenMaxReq  int
	FeedSimulatorSeed          int64
	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	lockHour, err := getEnvAsInt("LEAGUE_LOCK_HOUR", 17)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_LOCK_HOUR: %w", err)
	}
	if lockHour < 0 || lockHour > 23 {
		return Config{}, fmt.Errorf("LEAGUE_LOCK_HOUR must be between 0 and 23")
	}

	lockWeekday, err := parseWeekday(getEnv("LEAGUE_LOCK_WEEKDAY", "Monday"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_LOCK_WEEKDAY: %w", err)
	}

	rosterForwards, err := getEnvAsInt("LEAGUE_ROSTER_FORWARDS", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_ROSTER_FORWARDS: %w", err)
	}
	rosterDefense, err := getEnvAsInt("LEAGUE_ROSTER_DEFENSE", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_ROSTER_DEFENSE: %w", err)
	}
	starterForwards, err := getEnvAsInt("LEAGUE_STARTER_FORWARDS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_STARTER_FORWARDS: %w", err)
	}
	starterDefense, err := getEnvAsInt("LEAGUE_STARTER_DEFENSE", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_STARTER_DEFENSE: %w", err)
	}
	if rosterForwards < 1 || rosterDefense < 1 {
		return Config{}, fmt.Errorf("LEAGUE_ROSTER_FORWARDS and LEAGUE_ROSTER_DEFENSE must be >= 1")
	}
	if starterForwards < 1 || starterDefense < 1 {
		return Config{}, fmt.Errorf("LEAGUE_STARTER_FORWARDS and LEAGUE_STARTER_DEFENSE must be >= 1")
	}
	if starterForwards > rosterForwards {
		return Config{}, fmt.Errorf("LEAGUE_STARTER_FORWARDS cannot exceed LEAGUE_ROSTER_FORWARDS")
	}
	if starterDefense > rosterDefense {
		return Config{}, fmt.Errorf("LEAGUE_STARTER_DEFENSE cannot exceed LEAGUE_ROSTER_DEFENSE")
	}

	pointsPick, err := getEnvAsInt("LEAGUE_POINTS_PICK", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_POINTS_PICK: %w", err)
	}
	pointsGoal, err := getEnvAsInt("LEAGUE_POINTS_GOAL", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_POINTS_GOAL: %w", err)
	}
	pointsAssist, err := getEnvAsInt("LEAGUE_POINTS_ASSIST", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_POINTS_ASSIST: %w", err)
	}
	if pointsPick < 0 || pointsGoal < 0 || pointsAssist < 0 {
		return Config{}, fmt.Errorf("LEAGUE_POINTS_* values must be >= 0")
	}

	pickSlateSize, err := getEnvAsInt("LEAGUE_PICK_SLATE_SIZE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_PICK_SLATE_SIZE: %w", err)
	}
	if pickSlateSize < 1 {
		return Config{}, fmt.Errorf("LEAGUE_PICK_SLATE_SIZE must be >= 1")
	}

	leagueTimezone := strings.TrimSpace(getEnv("LEAGUE_TIMEZONE", "America/Toronto"))
	if _, err := time.LoadLocation(leagueTimezone); err != nil {
		return Config{}, fmt.Errorf("load LEAGUE_TIMEZONE %q: %w", leagueTimezone, err)
	}

	syncMaxWorkers, err := getEnvAsInt("SYNC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MAX_WORKERS: %w", err)
	}
	if syncMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SYNC_MAX_WORKERS must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	feedEnabled, err := strconv.ParseBool(getEnv("NHLFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_ENABLED: %w", err)
	}
	feedBaseURL := strings.TrimSpace(getEnv("NHLFEED_BASE_URL", ""))
	feedToken := strings.TrimSpace(getEnv("NHLFEED_TOKEN", ""))
	if feedEnabled && feedBaseURL == "" {
		return Config{}, fmt.Errorf("NHLFEED_BASE_URL is required when NHLFEED_ENABLED=true")
	}
	feedTimeout, err := time.ParseDuration(getEnv("NHLFEED_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_TIMEOUT: %w", err)
	}
	if feedTimeout <= 0 {
		return Config{}, fmt.Errorf("NHLFEED_TIMEOUT must be > 0")
	}
	feedMaxRetries, err := getEnvAsInt("NHLFEED_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_MAX_RETRIES: %w", err)
	}
	if feedMaxRetries < 0 {
		return Config{}, fmt.Errorf("NHLFEED_MAX_RETRIES must be >= 0")
	}
	feedMaxParallel, err := getEnvAsInt("NHLFEED_MAX_PARALLEL", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_MAX_PARALLEL: %w", err)
	}
	if feedMaxParallel < 1 {
		return Config{}, fmt.Errorf("NHLFEED_MAX_PARALLEL must be >= 1")
	}
	feedCircuitEnabled, err := strconv.ParseBool(getEnv("NHLFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_CIRCUIT_ENABLED: %w", err)
	}
	feedCircuitFailureCount, err := getEnvAsInt("NHLFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if feedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NHLFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	feedCircuitOpenTimeout, err := time.ParseDuration(getEnv("NHLFEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if feedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NHLFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	feedCircuitHalfOpenMaxReq, err := getEnvAsInt("NHLFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if feedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("NHLFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	feedSimulatorSeed, err := getEnvAsInt64("NHLFEED_SIMULATOR_SEED", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse NHLFEED_SIMULATOR_SEED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "puckpicks-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LeagueTimezone:             leagueTimezone,
		LockWeekday:                lockWeekday,
		LockHour:                   lockHour,
		PickSlateSize:              pickSlateSize,
		RosterForwards:             rosterForwards,
		RosterDefense:              rosterDefense,
		StarterForwards:            starterForwards,
		StarterDefense:             starterDefense,
		PointsPick:                 pointsPick,
		PointsGoal:                 pointsGoal,
		PointsAssist:               pointsAssist,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		SyncMaxWorkers:             syncMaxWorkers,
		FeedEnabled:                feedEnabled,
		FeedBaseURL:                feedBaseURL,
		FeedToken:                  feedToken,
		FeedTimeout:                feedTimeout,
		FeedMaxRetries:             feedMaxRetries,
		FeedMaxParallel:            feedMaxParallel,
		FeedCircuitEnabled:         feedCircuitEnabled,
		FeedCircuitFailureCount:    feedCircuitFailureCount,
		FeedCircuitOpenTimeout:     feedCircuitOpenTimeout,
		FeedCircuitHalfOpenMaxReq:  feedCircuitHalfOpenMaxReq,
		FeedSimulatorSeed:          feedSimulatorSeed,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseWeekday(v string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if value == strings.ToLower(d.String()) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("invalid weekday %q", v)
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
