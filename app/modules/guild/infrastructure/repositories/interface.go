package guilddb

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Repository defines the guild persistence operations.
type Repository interface {
	EnsureGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, now int64) error
	GetSettings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*GuildSettings, error)
	UpsertSettings(ctx context.Context, db bun.IDB, settings *GuildSettings) error
}
