package guilddb

import (
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// DefaultTimezoneOffsetMinutes is used when a guild has no settings row.
const DefaultTimezoneOffsetMinutes = -360

// Guild is a lazily created tenant row.
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	GuildID   sharedtypes.GuildID `bun:"guild_id,pk,type:varchar(20)"`
	CreatedAt int64               `bun:"created_at,notnull"`
}

// GuildSettings holds per-guild role bindings, the role-picker message pointer
// and the reporting timezone offset.
type GuildSettings struct {
	bun.BaseModel `bun:"table:guild_settings,alias:gs"`

	GuildID               sharedtypes.GuildID `bun:"guild_id,pk,type:varchar(20)"`
	RolesChannelID        string              `bun:"roles_channel_id,nullzero,type:varchar(20)"`
	RolesMessageID        string              `bun:"roles_message_id,nullzero,type:varchar(20)"`
	RoleBuilderID         string              `bun:"role_builder_id,nullzero,type:varchar(20)"`
	RoleStrikerID         string              `bun:"role_striker_id,nullzero,type:varchar(20)"`
	RolePinkcleanerID     string              `bun:"role_pinkcleaner_id,nullzero,type:varchar(20)"`
	RolePlayerID          string              `bun:"role_player_id,nullzero,type:varchar(20)"`
	TimezoneOffsetMinutes int                 `bun:"timezone_offset_minutes,notnull,default:-360"`
	UpdatedAt             int64               `bun:"updated_at,notnull"`
}
