package guildservice

import (
	"context"

	guilddb "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
)

// Service is the guild and settings registry surface consumed by other modules
// and by the command layer.
type Service interface {
	EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error
	Settings(ctx context.Context, guildID sharedtypes.GuildID) (*guilddb.GuildSettings, error)
	SaveSettings(ctx context.Context, guildID sharedtypes.GuildID, patch SettingsPatch) error
	TimezoneOffset(ctx context.Context, guildID sharedtypes.GuildID) (int, error)
}

// SettingsPatch is a partial settings update. Nil fields keep the stored
// value; a partial update never destructively clears a field.
type SettingsPatch struct {
	RolesChannelID        *string
	RolesMessageID        *string
	RoleBuilderID         *string
	RoleStrikerID         *string
	RolePinkcleanerID     *string
	RolePlayerID          *string
	TimezoneOffsetMinutes *int
}
