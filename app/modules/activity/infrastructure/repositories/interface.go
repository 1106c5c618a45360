package activitydb

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Repository defines the action persistence and aggregation operations.
// Day bucketing uses (created_at + offsetSecs) / 86400; since filters on the
// raw UTC epoch second. A nil since means season scope.
type Repository interface {
	InsertBatch(ctx context.Context, db bun.IDB, actions []*Action) error

	LeaderboardTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]UserTotal, error)
	UserTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, since *int64) ([]UserBuildHit, error)
	DayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]DayBucket, error)
	UserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, offsetSecs, since int64) ([]DayBucket, error)
	DayTotalsByUser(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, offsetSecs, since int64) ([]UserDayTotal, error)
	AllUserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]UserDayBucket, error)
	ExportRows(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs int64, since *int64) ([]ExportRow, error)
}
