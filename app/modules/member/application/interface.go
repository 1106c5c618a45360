package memberservice

import (
	"context"

	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
)

// Service is the member metadata cache surface.
type Service interface {
	Upsert(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch memberdb.MetaPatch) error
	Get(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*memberdb.Member, error)
	GetByIDs(ctx context.Context, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]memberdb.Member, error)
	Valor(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (int64, error)
	SetValor(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64) error
}

// GuildRegistry is the slice of the guild module the member cache needs.
type GuildRegistry interface {
	EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error
}
