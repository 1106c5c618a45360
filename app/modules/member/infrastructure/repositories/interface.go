package memberdb

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// MetaPatch carries the observed member fields of a partial upsert.
// Nil fields keep the cached values.
type MetaPatch struct {
	BotRole    *string
	Username   *string
	GlobalName *string
	Nickname   *string
}

// Repository defines the member cache persistence operations.
type Repository interface {
	InsertIfMissing(ctx context.Context, db bun.IDB, member *Member) error
	UpdateMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch MetaPatch, nameUpdatedAt *int64, now int64) error
	Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*Member, error)
	GetByIDs(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]Member, error)
	SetValor(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64, now int64) error
}
