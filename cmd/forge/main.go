package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/forgehall/forge-bot/app"
	"github.com/forgehall/forge-bot/config"

	activitymigrations "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories/migrations"
	guildmigrations "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories/migrations"
	membermigrations "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories/migrations"
	requestmigrations "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories/migrations"
	seasonmigrations "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories/migrations"
)

func main() {
	cliApp := &cli.App{
		Name:  "forge",
		Usage: "community build request tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the tracker until interrupted",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			application, err := app.NewApp(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

			logger.Info("application started, waiting for shutdown signal")
			select {
			case <-interrupt:
				logger.Info("shutting down")
			case <-ctx.Done():
				logger.Info("context canceled")
			}

			if err := application.Close(context.Background()); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}

			logger.Info("application shut down gracefully")
			return nil
		},
	}
}

func newMigrateCommand() *cli.Command {
	var db *bun.DB
	var migrators map[string]*migrate.Migrator

	setup := func(c *cli.Context) error {
		cfg, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
		db = bun.NewDB(pgdb, pgdialect.New())

		migrators = map[string]*migrate.Migrator{
			"guild":    migrate.NewMigrator(db, guildmigrations.Migrations),
			"season":   migrate.NewMigrator(db, seasonmigrations.Migrations),
			"member":   migrate.NewMigrator(db, membermigrations.Migrations),
			"activity": migrate.NewMigrator(db, activitymigrations.Migrations),
			"request":  migrate.NewMigrator(db, requestmigrations.Migrations),
		}
		return nil
	}

	teardown := func(c *cli.Context) error {
		if db != nil {
			return db.Close()
		}
		return nil
	}

	return &cli.Command{
		Name:   "migrate",
		Usage:  "database migrations",
		Before: setup,
		After:  teardown,
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", moduleName)
						if err := migrator.Init(c.Context); err != nil {
							return fmt.Errorf("module %s: %w", moduleName, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "up",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						group, err := migrator.Migrate(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", moduleName, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", moduleName)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", moduleName, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", moduleName)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migration status",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						ms, err := migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", moduleName, err)
						}
						fmt.Printf("%s: migrations: %s\n", moduleName, ms)
						fmt.Printf("%s: unapplied: %s\n", moduleName, ms.Unapplied())
						fmt.Printf("%s: last group: %s\n", moduleName, ms.LastGroup())
					}
					return nil
				},
			},
		},
	}
}
