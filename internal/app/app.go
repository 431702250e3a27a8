package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-roster/internal/config"
	"github.com/riskibarqy/club-roster/internal/domain/prefs"
	"github.com/riskibarqy/club-roster/internal/domain/roster"
	"github.com/riskibarqy/club-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-roster/internal/infrastructure/storage/jsonfile"
	"github.com/riskibarqy/club-roster/internal/interfaces/httpapi"
	"github.com/riskibarqy/club-roster/internal/platform/logging"
	"github.com/riskibarqy/club-roster/internal/platform/resilience"
	"github.com/riskibarqy/club-roster/internal/usecase"
)

// App holds the wired HTTP server and the state flushed on shutdown.
type App struct {
	Server *http.Server

	rosterService      *usecase.RosterService
	persistenceService *usecase.PersistenceService
	db                 *sqlx.DB
	logger             *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	prefsRepo := newPrefsRepository(cfg)
	userPrefs, err := loadUserPrefs(ctx, cfg, prefsRepo, logger)
	if err != nil {
		return nil, err
	}

	rosterRepo, db, err := newRosterRepository(ctx, cfg, userPrefs.RosterFilePath, logger)
	if err != nil {
		return nil, err
	}

	persistenceSvc := usecase.NewPersistenceService(rosterRepo, prefsRepo, memory.SeedSnapshot(), logger)
	initial, err := persistenceSvc.LoadRoster(ctx)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("load roster: %w", err)
	}

	rosterSvc, err := usecase.NewRosterService(initial, userPrefs, logger)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("build roster service: %w", err)
	}
	logger.InfoContext(ctx, "roster loaded",
		"storage_driver", cfg.StorageDriver,
		"persons", len(initial.PersonList),
		"teams", len(initial.TeamList),
		"positions", len(initial.PositionList),
	)

	handler := httpapi.NewHandler(rosterSvc, persistenceSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		rosterService:      rosterSvc,
		persistenceService: persistenceSvc,
		db:                 db,
		logger:             logger,
	}, nil
}

// Shutdown stops accepting requests, then writes the roster and the user
// prefs back to storage.
func (a *App) Shutdown(ctx context.Context) error {
	defer closeDB(a.db, a.logger)

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := a.persistenceService.Flush(ctx, a.rosterService.Snapshot(ctx), a.rosterService.UserPrefs(ctx)); err != nil {
		return fmt.Errorf("flush roster state: %w", err)
	}
	return nil
}

// loadUserPrefs reads the prefs file. Without stored prefs the configured
// roster file path is used.
func loadUserPrefs(ctx context.Context, cfg config.Config, repo prefs.Repository, logger *logging.Logger) (prefs.UserPrefs, error) {
	userPrefs := prefs.Default()
	userPrefs.RosterFilePath = cfg.RosterFilePath

	stored, found, err := repo.Load(ctx)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "load user prefs failed, using defaults", "path", cfg.PrefsFilePath, "error", err)
	case !found:
		logger.InfoContext(ctx, "no stored user prefs, using defaults", "path", cfg.PrefsFilePath)
	case stored.Validate() != nil:
		logger.WarnContext(ctx, "stored user prefs are invalid, using defaults", "path", cfg.PrefsFilePath)
	default:
		userPrefs = stored
	}

	if err := userPrefs.Validate(); err != nil {
		return prefs.UserPrefs{}, fmt.Errorf("resolve user prefs: %w", err)
	}
	return userPrefs, nil
}

// newPrefsRepository keeps prefs in process when the roster is in memory.
func newPrefsRepository(cfg config.Config) prefs.Repository {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.NewPrefsRepository()
	}
	return jsonfile.NewPrefsStore(cfg.PrefsFilePath)
}

func newRosterRepository(
	ctx context.Context,
	cfg config.Config,
	rosterFilePath string,
	logger *logging.Logger,
) (roster.Repository, *sqlx.DB, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dsn, dbName := postgresDSN(cfg)
		db, err := postgres.Open(ctx, dsn, dbName)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.InfoContext(ctx, "roster storage ready", "driver", cfg.StorageDriver, "db_name", dbName)
		store := postgres.NewRosterStore(db).WithCircuitBreaker(resilience.CircuitBreakerConfig{
			Enabled:          cfg.DBCircuitEnabled,
			FailureThreshold: cfg.DBCircuitFailureCount,
			OpenTimeout:      cfg.DBCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
		})
		return store, db, nil
	case config.StorageMemory:
		logger.InfoContext(ctx, "roster storage ready", "driver", cfg.StorageDriver)
		return memory.NewRosterRepository(), nil, nil
	case config.StorageFile, "":
		logger.InfoContext(ctx, "roster storage ready", "driver", config.StorageFile, "path", rosterFilePath)
		return jsonfile.NewRosterStore(rosterFilePath), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close postgres failed", "error", err)
	}
}
