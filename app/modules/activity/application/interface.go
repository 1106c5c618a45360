package activityservice

import (
	"context"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
)

// Service is the reporting surface over the action store. All operations
// bucket by calendar day in UTC + the guild's configured offset, read at
// query time.
type Service interface {
	Leaderboard(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]LeaderboardEntry, error)
	TotalsForSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]UserTotals, error)
	TotalsForWindow(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]UserTotals, error)
	DailyTotals(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]DayStat, error)
	DailyTotalsByUser(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, windowDays int) ([]UserDayStat, error)
	UserDailySeries(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, windowDays int) ([]DayStat, error)
	ServerDailySeries(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]DayStat, error)
	TodayVsYesterday(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]ActivityDelta, error)
	ExportDailySeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]ExportRow, error)
	ExportDailyWindow(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]ExportRow, error)
}

// OffsetSource resolves a guild's reporting offset in minutes from UTC.
// Implemented by the guild settings registry.
type OffsetSource interface {
	TimezoneOffset(ctx context.Context, guildID sharedtypes.GuildID) (int, error)
}
