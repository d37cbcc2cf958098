// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the engine.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	DBURL string
	// UseMemoryStore runs against seeded in-process repositories instead of
	// postgres; the default for local development.
	UseMemoryStore bool

	// Provider credentials are CSV lists ordered by priority; the first key
	// is tier 1.
	CricketdataBaseURL string
	CricketdataKeys    []string
	RoanuzBaseURL      string
	RoanuzProjectKey   string
	RoanuzKeys         []string
	EntitysportBaseURL string
	EntitysportKeys    []string

	ProviderTimeout    time.Duration
	ProviderMaxRetries int
	KeyCooldown        time.Duration

	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int

	SchedulerTick    time.Duration
	XILeadWindow     time.Duration
	XIDebounce       time.Duration
	LineupLeadWindow time.Duration
	LineupDebounce   time.Duration
	ScoreDebounce    time.Duration
	Workers          int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	useMemory, err := getEnvAsBool("USE_MEMORY_STORE", appEnv == EnvDev)
	if err != nil {
		return Config{}, fmt.Errorf("parse USE_MEMORY_STORE: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if !useMemory && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when USE_MEMORY_STORE=false")
	}

	providerTimeout, err := getEnvAsDuration("PROVIDER_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	providerMaxRetries, err := getEnvAsInt("PROVIDER_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_MAX_RETRIES: %w", err)
	}
	keyCooldown, err := getEnvAsDuration("PROVIDER_KEY_COOLDOWN", time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_KEY_COOLDOWN: %w", err)
	}

	circuitEnabled, err := getEnvAsBool("PROVIDER_CIRCUIT_ENABLED", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("PROVIDER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := getEnvAsDuration("PROVIDER_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	schedulerTick, err := getEnvAsDuration("SCHEDULER_TICK", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_TICK: %w", err)
	}
	xiLeadWindow, err := getEnvAsDuration("XI_LEAD_WINDOW", 20*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse XI_LEAD_WINDOW: %w", err)
	}
	xiDebounce, err := getEnvAsDuration("XI_DEBOUNCE", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse XI_DEBOUNCE: %w", err)
	}
	lineupLeadWindow, err := getEnvAsDuration("LINEUP_LEAD_WINDOW", 10*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse LINEUP_LEAD_WINDOW: %w", err)
	}
	lineupDebounce, err := getEnvAsDuration("LINEUP_DEBOUNCE", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse LINEUP_DEBOUNCE: %w", err)
	}
	scoreDebounce, err := getEnvAsDuration("SCORE_DEBOUNCE", 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_DEBOUNCE: %w", err)
	}
	workers, err := getEnvAsInt("SCHEDULER_WORKERS", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_WORKERS: %w", err)
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "fantasy-cricket-engine"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		DBURL:          dbURL,
		UseMemoryStore: useMemory,

		CricketdataBaseURL: getEnv("CRICKETDATA_BASE_URL", ""),
		CricketdataKeys:    splitCSV(getEnv("CRICKETDATA_API_KEYS", "")),
		RoanuzBaseURL:      getEnv("ROANUZ_BASE_URL", ""),
		RoanuzProjectKey:   getEnv("ROANUZ_PROJECT_KEY", ""),
		RoanuzKeys:         splitCSV(getEnv("ROANUZ_API_KEYS", "")),
		EntitysportBaseURL: getEnv("ENTITYSPORT_BASE_URL", ""),
		EntitysportKeys:    splitCSV(getEnv("ENTITYSPORT_API_KEYS", "")),

		ProviderTimeout:    providerTimeout,
		ProviderMaxRetries: providerMaxRetries,
		KeyCooldown:        keyCooldown,

		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,

		SchedulerTick:    schedulerTick,
		XILeadWindow:     xiLeadWindow,
		XIDebounce:       xiDebounce,
		LineupLeadWindow: lineupLeadWindow,
		LineupDebounce:   lineupDebounce,
		ScoreDebounce:    scoreDebounce,
		Workers:          workers,

		LogLevel: logLevel,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", v)
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
	return strconv.Atoi(value)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
