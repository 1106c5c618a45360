package activitydb

import (
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Action is an immutable point event. Rows are never updated or deleted.
// Build events carry the completed city count; hit events are recorded one
// per level with value 1 to preserve per-level granularity.
type Action struct {
	bun.BaseModel `bun:"table:actions,alias:a"`

	ID        int64                  `bun:"id,pk,autoincrement"`
	GuildID   sharedtypes.GuildID    `bun:"guild_id,notnull,type:varchar(20)"`
	SeasonID  sharedtypes.SeasonID   `bun:"season_id,notnull"`
	UserID    sharedtypes.UserID     `bun:"user_id,notnull,type:varchar(20)"`
	Type      sharedtypes.ActionType `bun:"type,notnull,type:varchar(10)"`
	Value     int64                  `bun:"value,notnull"`
	Meta      map[string]any         `bun:"meta,type:jsonb"`
	CreatedAt int64                  `bun:"created_at,notnull"`
}

// UserTotal is a per-user sum for a single action type.
type UserTotal struct {
	UserID sharedtypes.UserID `bun:"user_id"`
	Total  int64              `bun:"total"`
}

// UserBuildHit is a per-user sum of both action types.
type UserBuildHit struct {
	UserID sharedtypes.UserID `bun:"user_id"`
	Builds int64              `bun:"builds"`
	Hits   int64              `bun:"hits"`
}

// DayBucket is a per-day sum of both action types. DayIndex counts whole
// days since the epoch in the guild-local frame.
type DayBucket struct {
	DayIndex int64 `bun:"day_index"`
	Builds   int64 `bun:"builds"`
	Hits     int64 `bun:"hits"`
}

// UserDayTotal is a per-user per-day sum for a single action type.
type UserDayTotal struct {
	UserID   sharedtypes.UserID `bun:"user_id"`
	DayIndex int64              `bun:"day_index"`
	Total    int64              `bun:"total"`
}

// UserDayBucket is a per-user per-day sum of both action types.
type UserDayBucket struct {
	UserID   sharedtypes.UserID `bun:"user_id"`
	DayIndex int64              `bun:"day_index"`
	Builds   int64              `bun:"builds"`
	Hits     int64              `bun:"hits"`
}

// ExportRow is a per-user per-day aggregate joined with the member cache.
type ExportRow struct {
	DayIndex   int64              `bun:"day_index"`
	UserID     sharedtypes.UserID `bun:"user_id"`
	BotRole    string             `bun:"bot_role"`
	Nickname   string             `bun:"nickname"`
	GlobalName string             `bun:"global_name"`
	Username   string             `bun:"username"`
	Builds     int64              `bun:"builds"`
	Hits       int64              `bun:"hits"`
	Valor      int64              `bun:"valor"`
}
