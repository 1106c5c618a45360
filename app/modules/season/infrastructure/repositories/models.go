package seasondb

import (
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Season is an immutable historical partition key for events and requests.
// Seasons are never deleted; exactly one is active per guild.
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`

	GuildID   sharedtypes.GuildID  `bun:"guild_id,pk,type:varchar(20)"`
	SeasonID  sharedtypes.SeasonID `bun:"season_id,pk"`
	IsActive  bool                 `bun:"is_active,notnull,default:true"`
	CreatedBy *sharedtypes.UserID  `bun:"created_by,nullzero,type:varchar(20)"`
	CreatedAt int64                `bun:"created_at,notnull"`
}
