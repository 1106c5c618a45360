package guilddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a guild settings row is not found.
var ErrNotFound = errors.New("guild settings not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new guild repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// EnsureGuild lazily inserts the guild row on first reference.
func (r *Impl) EnsureGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, now int64) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&Guild{GuildID: guildID, CreatedAt: now}).
		On("CONFLICT (guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure guild: %w", err)
	}
	return nil
}

// GetSettings retrieves the settings row for a guild.
func (r *Impl) GetSettings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildSettings, error) {
	db = r.resolveDB(db)
	settings := new(GuildSettings)
	err := db.NewSelect().
		Model(settings).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	return settings, nil
}

// UpsertSettings writes the full settings row for a guild.
func (r *Impl) UpsertSettings(ctx context.Context, db bun.IDB, settings *GuildSettings) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(settings).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("roles_channel_id = EXCLUDED.roles_channel_id").
		Set("roles_message_id = EXCLUDED.roles_message_id").
		Set("role_builder_id = EXCLUDED.role_builder_id").
		Set("role_striker_id = EXCLUDED.role_striker_id").
		Set("role_pinkcleaner_id = EXCLUDED.role_pinkcleaner_id").
		Set("role_player_id = EXCLUDED.role_player_id").
		Set("timezone_offset_minutes = EXCLUDED.timezone_offset_minutes").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert guild settings: %w", err)
	}
	return nil
}
