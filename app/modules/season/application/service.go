package seasonservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	seasondb "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// firstSeasonID seeds a guild's season history on first access.
const firstSeasonID sharedtypes.SeasonID = 1

// SeasonService implements the Service interface.
type SeasonService struct {
	repo   seasondb.Repository
	guilds GuildRegistry
	logger *slog.Logger
	db     *bun.DB
	now    func() time.Time
}

// NewSeasonService creates a new SeasonService.
func NewSeasonService(repo seasondb.Repository, guilds GuildRegistry, logger *slog.Logger, db *bun.DB) *SeasonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeasonService{
		repo:   repo,
		guilds: guilds,
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

// GetOrCreateActive returns the guild's active season id, atomically seeding
// season 1 when the guild has no seasons yet.
func (s *SeasonService) GetOrCreateActive(ctx context.Context, guildID sharedtypes.GuildID) (sharedtypes.SeasonID, error) {
	if err := s.guilds.EnsureGuild(ctx, guildID); err != nil {
		return 0, err
	}

	season, err := s.repo.GetActive(ctx, nil, guildID)
	if err == nil {
		return season.SeasonID, nil
	}
	if !errors.Is(err, seasondb.ErrNotFound) {
		return 0, err
	}

	err = s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		if err := s.repo.DeactivateAll(ctx, db, guildID); err != nil {
			return err
		}
		return s.repo.UpsertActive(ctx, db, &seasondb.Season{
			GuildID:   guildID,
			SeasonID:  firstSeasonID,
			CreatedAt: s.now().Unix(),
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed first season: %w", err)
	}

	s.logger.InfoContext(ctx, "seeded first season", "guild_id", guildID)
	return firstSeasonID, nil
}

// Exists reports whether the season id has been created for the guild.
func (s *SeasonService) Exists(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error) {
	return s.repo.Exists(ctx, nil, guildID, seasonID)
}

// List returns the guild's seasons, newest first.
func (s *SeasonService) List(ctx context.Context, guildID sharedtypes.GuildID) ([]seasondb.Season, error) {
	if err := s.guilds.EnsureGuild(ctx, guildID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, nil, guildID)
}

// StartNewSeason deactivates every existing season of the guild and activates
// the new one in a single transaction. Starting an existing season id fails
// with ErrSeasonExists.
func (s *SeasonService) StartNewSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, createdBy *sharedtypes.UserID) (sharedtypes.SeasonID, error) {
	if err := s.guilds.EnsureGuild(ctx, guildID); err != nil {
		return 0, err
	}

	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		exists, err := s.repo.Exists(ctx, db, guildID, seasonID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: season %d", ErrSeasonExists, seasonID)
		}

		if err := s.repo.DeactivateAll(ctx, db, guildID); err != nil {
			return err
		}
		return s.repo.UpsertActive(ctx, db, &seasondb.Season{
			GuildID:   guildID,
			SeasonID:  seasonID,
			CreatedBy: createdBy,
			CreatedAt: s.now().Unix(),
		})
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "started new season", "guild_id", guildID, "season_id", seasonID)
	return seasonID, nil
}

func (s *SeasonService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

var _ Service = (*SeasonService)(nil)
