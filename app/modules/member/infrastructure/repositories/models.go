package memberdb

import (
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Member is the best-effort metadata cache row for a (guild, user) pair.
// Name fields are cached opportunistically whenever the bot observes the user.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	GuildID       sharedtypes.GuildID `bun:"guild_id,pk,type:varchar(20)"`
	UserID        sharedtypes.UserID  `bun:"user_id,pk,type:varchar(20)"`
	BotRole       string              `bun:"bot_role,nullzero,type:varchar(32)"`
	Valor         int64               `bun:"valor,notnull,default:0"`
	Username      string              `bun:"username,nullzero"`
	GlobalName    string              `bun:"global_name,nullzero"`
	Nickname      string              `bun:"nickname,nullzero"`
	NameUpdatedAt int64               `bun:"name_updated_at,nullzero"`
	CreatedAt     int64               `bun:"created_at,notnull"`
	UpdatedAt     int64               `bun:"updated_at,notnull"`
}
