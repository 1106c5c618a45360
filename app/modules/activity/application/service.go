package activityservice

import (
	"context"
	"log/slog"
	"time"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

const secondsPerDay = 86400

// ActivityService implements the Service interface. It only ever reads the
// actions table; the write path is the Buffer.
type ActivityService struct {
	repo    activitydb.Repository
	offsets OffsetSource
	logger  *slog.Logger
	db      *bun.DB
	now     func() time.Time
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo activitydb.Repository, offsets OffsetSource, logger *slog.Logger, db *bun.DB) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{
		repo:    repo,
		offsets: offsets,
		logger:  logger,
		db:      db,
		now:     time.Now,
	}
}

// reportingWindow is a trailing range of guild-local days ending today.
type reportingWindow struct {
	offsetSecs int64
	startIdx   int64 // first local day index of the window
	todayIdx   int64 // local day index of "today"
	since      int64 // UTC epoch second where the window starts
}

func (s *ActivityService) window(ctx context.Context, guildID sharedtypes.GuildID, windowDays int) (reportingWindow, error) {
	offsetMinutes, err := s.offsets.TimezoneOffset(ctx, guildID)
	if err != nil {
		return reportingWindow{}, err
	}
	if windowDays < 1 {
		windowDays = 1
	}

	offsetSecs := int64(offsetMinutes) * 60
	todayIdx := (s.now().Unix() + offsetSecs) / secondsPerDay
	startIdx := todayIdx - int64(windowDays-1)

	return reportingWindow{
		offsetSecs: offsetSecs,
		startIdx:   startIdx,
		todayIdx:   todayIdx,
		since:      startIdx*secondsPerDay - offsetSecs,
	}, nil
}

func dayString(dayIndex int64) string {
	return time.Unix(dayIndex*secondsPerDay, 0).UTC().Format(time.DateOnly)
}

// Leaderboard returns the top users for one metric within a season,
// descending. Tie order is whatever the underlying sort yields.
func (s *ActivityService) Leaderboard(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.repo.LeaderboardTotals(ctx, nil, guildID, seasonID, actionType, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{UserID: row.UserID, Total: row.Total})
	}
	return entries, nil
}

// TotalsForSeason returns per-user grand totals for the whole season.
func (s *ActivityService) TotalsForSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]UserTotals, error) {
	rows, err := s.repo.UserTotals(ctx, nil, guildID, seasonID, nil)
	if err != nil {
		return nil, err
	}
	return toUserTotals(rows), nil
}

// TotalsForWindow returns per-user totals for the trailing windowDays local
// days including today.
func (s *ActivityService) TotalsForWindow(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]UserTotals, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.UserTotals(ctx, nil, guildID, seasonID, &w.since)
	if err != nil {
		return nil, err
	}
	return toUserTotals(rows), nil
}

// DailyTotals returns server-wide per-day totals for the trailing window.
// Days without activity are omitted.
func (s *ActivityService) DailyTotals(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]DayStat, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DayBuckets(ctx, nil, guildID, seasonID, w.offsetSecs, w.since)
	if err != nil {
		return nil, err
	}
	stats := make([]DayStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, DayStat{Day: dayString(row.DayIndex), Builds: row.Builds, Hits: row.Hits})
	}
	return stats, nil
}

// DailyTotalsByUser returns per-user per-day totals for one metric within
// the trailing window.
func (s *ActivityService) DailyTotalsByUser(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, windowDays int) ([]UserDayStat, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DayTotalsByUser(ctx, nil, guildID, seasonID, actionType, w.offsetSecs, w.since)
	if err != nil {
		return nil, err
	}
	stats := make([]UserDayStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, UserDayStat{UserID: row.UserID, Day: dayString(row.DayIndex), Total: row.Total})
	}
	return stats, nil
}

// UserDailySeries returns a zero-filled per-day series for one user: exactly
// windowDays rows of consecutive local dates ending today, oldest first.
func (s *ActivityService) UserDailySeries(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, windowDays int) ([]DayStat, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.UserDayBuckets(ctx, nil, guildID, seasonID, userID, w.offsetSecs, w.since)
	if err != nil {
		return nil, err
	}
	return zeroFill(w, rows), nil
}

// ServerDailySeries returns a zero-filled per-day series across all users.
func (s *ActivityService) ServerDailySeries(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]DayStat, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DayBuckets(ctx, nil, guildID, seasonID, w.offsetSecs, w.since)
	if err != nil {
		return nil, err
	}
	return zeroFill(w, rows), nil
}

// TodayVsYesterday returns, for every user active in the trailing 2 local
// days, today's and yesterday's totals (0 when absent). The 2-day span is
// fixed by construction; it is not a window parameter.
func (s *ActivityService) TodayVsYesterday(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]ActivityDelta, error) {
	w, err := s.window(ctx, guildID, 2)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.AllUserDayBuckets(ctx, nil, guildID, seasonID, w.offsetSecs, w.since)
	if err != nil {
		return nil, err
	}

	byUser := make(map[sharedtypes.UserID]*ActivityDelta)
	var order []sharedtypes.UserID
	for _, row := range rows {
		delta, ok := byUser[row.UserID]
		if !ok {
			delta = &ActivityDelta{UserID: row.UserID}
			byUser[row.UserID] = delta
			order = append(order, row.UserID)
		}
		switch row.DayIndex {
		case w.todayIdx:
			delta.TodayBuilds = row.Builds
			delta.TodayHits = row.Hits
		case w.todayIdx - 1:
			delta.YesterdayBuilds = row.Builds
			delta.YesterdayHits = row.Hits
		}
	}

	deltas := make([]ActivityDelta, 0, len(order))
	for _, userID := range order {
		deltas = append(deltas, *byUser[userID])
	}
	return deltas, nil
}

// ExportDailySeason returns per-user per-day export rows for the whole
// season, joined with cached member metadata.
func (s *ActivityService) ExportDailySeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) ([]ExportRow, error) {
	w, err := s.window(ctx, guildID, 1)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ExportRows(ctx, nil, guildID, seasonID, w.offsetSecs, nil)
	if err != nil {
		return nil, err
	}
	return toExportRows(rows), nil
}

// ExportDailyWindow is ExportDailySeason limited to the trailing window.
func (s *ActivityService) ExportDailyWindow(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, windowDays int) ([]ExportRow, error) {
	w, err := s.window(ctx, guildID, windowDays)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ExportRows(ctx, nil, guildID, seasonID, w.offsetSecs, &w.since)
	if err != nil {
		return nil, err
	}
	return toExportRows(rows), nil
}

func zeroFill(w reportingWindow, rows []activitydb.DayBucket) []DayStat {
	byDay := make(map[int64]activitydb.DayBucket, len(rows))
	for _, row := range rows {
		byDay[row.DayIndex] = row
	}

	series := make([]DayStat, 0, w.todayIdx-w.startIdx+1)
	for idx := w.startIdx; idx <= w.todayIdx; idx++ {
		stat := DayStat{Day: dayString(idx)}
		if row, ok := byDay[idx]; ok {
			stat.Builds = row.Builds
			stat.Hits = row.Hits
		}
		series = append(series, stat)
	}
	return series
}

func toUserTotals(rows []activitydb.UserBuildHit) []UserTotals {
	totals := make([]UserTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, UserTotals{UserID: row.UserID, Builds: row.Builds, Hits: row.Hits})
	}
	return totals
}

func toExportRows(rows []activitydb.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ExportRow{
			Day:        dayString(row.DayIndex),
			UserID:     row.UserID,
			BotRole:    row.BotRole,
			Nickname:   row.Nickname,
			GlobalName: row.GlobalName,
			Username:   row.Username,
			Builds:     row.Builds,
			Hits:       row.Hits,
			Valor:      row.Valor,
		})
	}
	return out
}

var _ Service = (*ActivityService)(nil)
