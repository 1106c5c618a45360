package seasonservice

import (
	"context"

	seasondb "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
)

// Service is the season registry surface.
type Service interface {
	GetOrCreateActive(ctx context.Context, guildID sharedtypes.GuildID) (sharedtypes.SeasonID, error)
	Exists(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error)
	List(ctx context.Context, guildID sharedtypes.GuildID) ([]seasondb.Season, error)
	StartNewSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, createdBy *sharedtypes.UserID) (sharedtypes.SeasonID, error)
}

// GuildRegistry is the slice of the guild module the season registry needs.
type GuildRegistry interface {
	EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error
}
