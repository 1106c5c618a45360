package activityservice

import "github.com/forgehall/forge-bot/app/shared/sharedtypes"

// DayStat is one guild-local calendar day of build/hit totals.
type DayStat struct {
	Day    string // YYYY-MM-DD in guild-local time
	Builds int64
	Hits   int64
}

// UserTotals is a per-user grand total of both metrics.
type UserTotals struct {
	UserID sharedtypes.UserID
	Builds int64
	Hits   int64
}

// LeaderboardEntry is one row of a single-metric leaderboard.
type LeaderboardEntry struct {
	UserID sharedtypes.UserID
	Total  int64
}

// UserDayStat is a per-user single-metric total for one guild-local day.
type UserDayStat struct {
	UserID sharedtypes.UserID
	Day    string
	Total  int64
}

// ActivityDelta compares a user's totals across today and yesterday in
// guild-local time.
type ActivityDelta struct {
	UserID          sharedtypes.UserID
	TodayBuilds     int64
	YesterdayBuilds int64
	TodayHits       int64
	YesterdayHits   int64
}

// ExportRow is a per-user per-day aggregate enriched with cached member
// metadata, ready for the reporting layer to format.
type ExportRow struct {
	Day        string
	UserID     sharedtypes.UserID
	BotRole    string
	Nickname   string
	GlobalName string
	Username   string
	Builds     int64
	Hits       int64
	Valor      int64
}
