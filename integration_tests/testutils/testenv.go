package testutils

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	_ "github.com/jackc/pgx/v5/stdlib"

	activitymigrations "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories/migrations"
	guildmigrations "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories/migrations"
	membermigrations "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories/migrations"
	requestmigrations "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories/migrations"
	seasonmigrations "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories/migrations"
	"github.com/forgehall/forge-bot/integration_tests/containers"
	"github.com/forgehall/forge-bot/internal/db/bundb"
)

// TestEnvironment holds the resources shared by the integration tests.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	DSN           string
}

// NewTestEnvironment starts a Postgres container and migrates every module's
// schema into it.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	db := bundb.BunDB(sqlDB)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		DB:            db,
		DSN:           dsn,
	}, nil
}

// Cleanup tears the environment down.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		env.DB.Close()
	}
	if env.PgContainer != nil {
		env.PgContainer.Terminate(env.Ctx)
	}
	env.CancelContext()
}

// ResetTables truncates every domain table so each test starts clean.
func (env *TestEnvironment) ResetTables(ctx context.Context) error {
	_, err := env.DB.ExecContext(ctx,
		"TRUNCATE TABLE actions, requests, members, seasons, guild_settings, guilds")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	sets := map[string]*migrate.Migrations{
		"guild":    guildmigrations.Migrations,
		"season":   seasonmigrations.Migrations,
		"member":   membermigrations.Migrations,
		"activity": activitymigrations.Migrations,
		"request":  requestmigrations.Migrations,
	}
	for moduleName, set := range sets {
		migrator := migrate.NewMigrator(db, set)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", moduleName, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", moduleName, err)
		}
	}
	return nil
}
