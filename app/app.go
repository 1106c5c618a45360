package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	activityservice "github.com/forgehall/forge-bot/app/modules/activity/application"
	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	guildservice "github.com/forgehall/forge-bot/app/modules/guild/application"
	guilddb "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories"
	memberservice "github.com/forgehall/forge-bot/app/modules/member/application"
	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	requestservice "github.com/forgehall/forge-bot/app/modules/request/application"
	requestdb "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories"
	seasonservice "github.com/forgehall/forge-bot/app/modules/season/application"
	seasondb "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories"
	"github.com/forgehall/forge-bot/config"
	"github.com/forgehall/forge-bot/internal/db/bundb"
	"github.com/forgehall/forge-bot/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App wires the storage layer, the per-module services, and the metrics
// endpoint into one process.
type App struct {
	Config *config.Config

	GuildService    guildservice.Service
	SeasonService   seasonservice.Service
	MemberService   memberservice.Service
	ActivityService activityservice.Service
	RequestService  requestservice.Service

	db      *bundb.DBService
	buffer  *activityservice.Buffer
	metrics *observability.MetricsServer
	logger  *slog.Logger
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	db := dbService.GetDB()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	guildRepo := guilddb.NewRepository(db)
	seasonRepo := seasondb.NewRepository(db)
	memberRepo := memberdb.NewRepository(db)
	actionRepo := activitydb.NewRepository(db)
	requestRepo := requestdb.NewRepository(db)

	guildSvc := guildservice.NewGuildService(guildRepo, logger, db)
	seasonSvc := seasonservice.NewSeasonService(seasonRepo, guildSvc, logger, db)
	memberSvc := memberservice.NewMemberService(memberRepo, guildSvc, logger, db)

	buffer := activityservice.NewBuffer(
		actionRepo,
		logger,
		observability.NewBufferMetrics(registry),
		cfg.Buffer.MaxQueue,
		cfg.Buffer.FlushInterval,
	)
	activitySvc := activityservice.NewActivityService(actionRepo, guildSvc, logger, db)
	requestSvc := requestservice.NewRequestService(requestRepo, buffer, logger, db)

	a := &App{
		Config:          cfg,
		GuildService:    guildSvc,
		SeasonService:   seasonSvc,
		MemberService:   memberSvc,
		ActivityService: activitySvc,
		RequestService:  requestSvc,
		db:              dbService,
		buffer:          buffer,
		logger:          logger,
	}

	if cfg.Observability.MetricsAddress != "" {
		a.metrics = observability.NewMetricsServer(cfg.Observability.MetricsAddress, registry, logger)
		go a.metrics.Start()
	}

	return a, nil
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}

// Buffer returns the action write-behind buffer.
func (a *App) Buffer() *activityservice.Buffer {
	return a.buffer
}

// Close shuts the app down. The buffer flushes before the store handle
// closes so no buffered actions are dropped.
func (a *App) Close(ctx context.Context) error {
	var firstErr error

	if err := a.buffer.Close(ctx); err != nil {
		a.logger.ErrorContext(ctx, "final buffer flush failed", "error", err)
		firstErr = err
	}

	if a.metrics != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.metrics.Shutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
