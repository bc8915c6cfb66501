package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/fridayfut/fridayfut/internal/config"
	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
	"github.com/fridayfut/fridayfut/internal/infrastructure/repository/memory"
	"github.com/fridayfut/fridayfut/internal/infrastructure/repository/postgres"
	"github.com/fridayfut/fridayfut/internal/interfaces/httpapi"
	"github.com/fridayfut/fridayfut/internal/platform/cache"
	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
	"github.com/fridayfut/fridayfut/internal/usecase"
)

type repositories struct {
	roster   roster.Repository
	match    match.Repository
	checkin  checkin.Repository
	settings settings.Repository
	close    func(context.Context) error
}

// NewHTTPServer builds the wired application server. The returned cleanup
// releases the store connections and background watchers; call it after the
// server has shut down.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	idGen := idgen.NewRandomGenerator()

	sessionSvc := usecase.NewSessionService(cfg.PlayerAccessCode, cfg.AdminAccessCode, idGen, logger)
	rosterSvc := usecase.NewRosterService(repos.roster, idGen, logger)
	checkinSvc := usecase.NewCheckinService(repos.checkin, repos.settings, repos.roster, idGen, logger)
	matchSvc := usecase.NewMatchService(repos.match, repos.roster, idGen, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.roster, repos.match, repos.checkin, cacheStore, logger)
	teamsheetSvc := usecase.NewTeamsheetService(repos.roster, repos.match, repos.checkin, repos.settings, logger)
	importSvc := usecase.NewImportService(repos.roster, idGen, logger)
	adminSvc := usecase.NewAdminService(repos.roster, repos.match, repos.checkin, idGen, logger)
	liveSvc := usecase.NewLiveService(repos.roster, repos.match, repos.checkin, repos.settings, logger)

	stopInvalidation, err := leaderboardSvc.StartInvalidation(context.Background())
	if err != nil {
		_ = repos.close(context.Background())
		return nil, nil, fmt.Errorf("start leaderboard invalidation: %w", err)
	}

	handler := httpapi.NewHandler(
		sessionSvc,
		rosterSvc,
		checkinSvc,
		matchSvc,
		leaderboardSvc,
		teamsheetSvc,
		importSvc,
		adminSvc,
		liveSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, sessionSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		stopInvalidation()
		_ = repos.close(context.Background())
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func(ctx context.Context) error {
		stopInvalidation()
		return repos.close(ctx)
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if !cfg.DBEnabled {
		logger.Info("using in-memory stores", "reason", "DB_ENABLED=false")
		return repositories{
			roster:   memory.NewRosterRepository(nil),
			match:    memory.NewMatchRepository(nil),
			checkin:  memory.NewCheckinRepository(),
			settings: memory.NewSettingsRepository(),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	feed := postgres.NewChangeFeed(dsn, logger)
	if err := feed.Start(); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("start change feed: %w", err)
	}

	logger.Info("using postgres stores", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		roster:   postgres.NewRosterRepository(db, feed),
		match:    postgres.NewMatchRepository(db, feed),
		checkin:  postgres.NewCheckinRepository(db, feed),
		settings: postgres.NewSettingsRepository(db, feed),
		close: func(context.Context) error {
			if err := feed.Close(); err != nil {
				return err
			}
			return db.Close()
		},
	}, nil
}
