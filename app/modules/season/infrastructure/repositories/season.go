package seasondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no active season exists for a guild.
var ErrNotFound = errors.New("active season not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new season repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetActive retrieves the guild's currently active season.
func (r *Impl) GetActive(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*Season, error) {
	db = r.resolveDB(db)
	season := new(Season)
	err := db.NewSelect().
		Model(season).
		Where("guild_id = ?", guildID).
		Where("is_active = TRUE").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	return season, nil
}

// Exists reports whether the season id has been created for the guild.
func (r *Impl) Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Season)(nil)).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check season existence: %w", err)
	}
	return exists, nil
}

// List returns the guild's seasons, newest first.
func (r *Impl) List(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]Season, error) {
	db = r.resolveDB(db)
	var seasons []Season
	err := db.NewSelect().
		Model(&seasons).
		Where("guild_id = ?", guildID).
		Order("season_id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// DeactivateAll clears the active flag on every season of the guild.
func (r *Impl) DeactivateAll(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Season)(nil)).
		Set("is_active = FALSE").
		Where("guild_id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate seasons: %w", err)
	}
	return nil
}

// UpsertActive inserts the season as active, reactivating it if the row
// already exists.
func (r *Impl) UpsertActive(ctx context.Context, db bun.IDB, season *Season) error {
	db = r.resolveDB(db)
	season.IsActive = true
	_, err := db.NewInsert().
		Model(season).
		On("CONFLICT (guild_id, season_id) DO UPDATE").
		Set("is_active = TRUE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert season: %w", err)
	}
	return nil
}
