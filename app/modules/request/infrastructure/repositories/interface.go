package requestdb

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Repository handles persistence for build requests. Every state transition
// is a single conditional UPDATE whose row count decides the outcome, so two
// racing callers can never both win the same transition.
type Repository interface {
	Insert(ctx context.Context, db bun.IDB, request *Request) error
	Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*Request, error)
	Claim(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error)
	Complete(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error)
	Cancel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID, now int64) (bool, error)
	SetMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any, now int64) (bool, error)
}
