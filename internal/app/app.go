// Package app wires configuration, repositories, provider adapters and the
// reconciliation scheduler into a runnable engine.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/pitchside/fantasy-cricket/external/cricketdata"
	"github.com/pitchside/fantasy-cricket/external/entitysport"
	"github.com/pitchside/fantasy-cricket/external/roanuz"
	"github.com/pitchside/fantasy-cricket/internal/config"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/pitchside/fantasy-cricket/internal/platform/keyring"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

// Engine owns the wired scheduler and the resources behind it.
type Engine struct {
	Scheduler *usecase.SchedulerService
	db        *sqlx.DB
}

func NewEngine(cfg config.Config, logger *logging.Logger) (*Engine, error) {
	matches, players, teams, db, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	keys := keyring.NewRouter(cfg.KeyCooldown)
	keys.Register(cricketdata.ProviderName, cfg.CricketdataKeys...)
	keys.Register(roanuz.ProviderName, cfg.RoanuzKeys...)
	keys.Register(entitysport.ProviderName, cfg.EntitysportKeys...)

	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}
	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.CircuitEnabled,
		FailureThreshold: cfg.CircuitFailureCount,
		OpenTimeout:      cfg.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
	}

	primary := cricketdata.NewClient(cricketdata.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.CricketdataBaseURL,
		Keys:           keys,
		Timeout:        cfg.ProviderTimeout,
		MaxRetries:     cfg.ProviderMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	secondary := roanuz.NewClient(roanuz.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.RoanuzBaseURL,
		ProjectKey:     cfg.RoanuzProjectKey,
		Keys:           keys,
		Timeout:        cfg.ProviderTimeout,
		MaxRetries:     cfg.ProviderMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	regional := entitysport.NewClient(entitysport.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.EntitysportBaseURL,
		Keys:           keys,
		Timeout:        cfg.ProviderTimeout,
		MaxRetries:     cfg.ProviderMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})

	teamPoints := usecase.NewTeamPointsService(players, teams, logger, cfg.Workers)
	xi := usecase.NewPlayingXIService(matches, players, primary, secondary, regional, logger)
	scorecards := usecase.NewScorecardService(matches, players, primary, primary, teamPoints, logger)

	scheduler := usecase.NewSchedulerService(matches, xi, scorecards, usecase.SchedulerConfig{
		TickInterval:     cfg.SchedulerTick,
		XILeadWindow:     cfg.XILeadWindow,
		XIDebounce:       cfg.XIDebounce,
		LineupLeadWindow: cfg.LineupLeadWindow,
		LineupDebounce:   cfg.LineupDebounce,
		ScoreDebounce:    cfg.ScoreDebounce,
		Workers:          cfg.Workers,
	}, logger)

	return &Engine{Scheduler: scheduler, db: db}, nil
}

// Close releases pooled resources. Safe on a memory-store engine.
func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

func buildRepositories(cfg config.Config) (match.Repository, player.Repository, userteam.Repository, *sqlx.DB, error) {
	if cfg.UseMemoryStore {
		now := time.Now()
		return memory.NewMatchRepository(memory.SeedMatches(now)),
			memory.NewPlayerRepository(memory.SeedPlayers()),
			memory.NewUserTeamRepository(memory.SeedUserTeams()),
			nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers * 2)
	db.SetMaxIdleConns(cfg.Workers)
	db.SetConnMaxLifetime(30 * time.Minute)

	return postgres.NewMatchRepository(db),
		postgres.NewPlayerRepository(db),
		postgres.NewUserTeamRepository(db),
		db, nil
}
