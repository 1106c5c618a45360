package seasondb

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Repository defines the season persistence operations.
type Repository interface {
	GetActive(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*Season, error)
	Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error)
	List(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]Season, error)
	DeactivateAll(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) error
	UpsertActive(ctx context.Context, db bun.IDB, season *Season) error
}
