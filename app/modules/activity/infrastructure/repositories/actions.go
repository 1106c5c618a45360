package activitydb

import (
	"context"
	"fmt"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new action repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// InsertBatch persists a batch of actions as one multi-row insert, so a
// failed batch leaves no partial rows behind.
func (r *Impl) InsertBatch(ctx context.Context, db bun.IDB, actions []*Action) error {
	if len(actions) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().Model(&actions).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert action batch: %w", err)
	}
	return nil
}

// LeaderboardTotals sums values per user for one action type, descending.
func (r *Impl) LeaderboardTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]UserTotal, error) {
	db = r.resolveDB(db)
	var rows []UserTotal
	err := db.NewSelect().
		Model((*Action)(nil)).
		Column("user_id").
		ColumnExpr("SUM(value) AS total").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("type = ?", actionType).
		Group("user_id").
		OrderExpr("total DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard totals: %w", err)
	}
	return rows, nil
}

// UserTotals sums builds and hits per user, optionally limited to events at
// or after since.
func (r *Impl) UserTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, since *int64) ([]UserBuildHit, error) {
	db = r.resolveDB(db)
	var rows []UserBuildHit
	q := db.NewSelect().
		Model((*Action)(nil)).
		Column("user_id").
		ColumnExpr("SUM(CASE WHEN type = 'build' THEN value ELSE 0 END) AS builds").
		ColumnExpr("SUM(CASE WHEN type = 'hit' THEN value ELSE 0 END) AS hits").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Group("user_id")
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to query user totals: %w", err)
	}
	return rows, nil
}

// DayBuckets sums builds and hits per guild-local day across all users.
func (r *Impl) DayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]DayBucket, error) {
	db = r.resolveDB(db)
	var rows []DayBucket
	err := db.NewSelect().
		Model((*Action)(nil)).
		ColumnExpr("(created_at + ?) / 86400 AS day_index", offsetSecs).
		ColumnExpr("SUM(CASE WHEN type = 'build' THEN value ELSE 0 END) AS builds").
		ColumnExpr("SUM(CASE WHEN type = 'hit' THEN value ELSE 0 END) AS hits").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("created_at >= ?", since).
		GroupExpr("(created_at + ?) / 86400", offsetSecs).
		OrderExpr("day_index ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query day buckets: %w", err)
	}
	return rows, nil
}

// UserDayBuckets sums builds and hits per guild-local day for one user.
func (r *Impl) UserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, offsetSecs, since int64) ([]DayBucket, error) {
	db = r.resolveDB(db)
	var rows []DayBucket
	err := db.NewSelect().
		Model((*Action)(nil)).
		ColumnExpr("(created_at + ?) / 86400 AS day_index", offsetSecs).
		ColumnExpr("SUM(CASE WHEN type = 'build' THEN value ELSE 0 END) AS builds").
		ColumnExpr("SUM(CASE WHEN type = 'hit' THEN value ELSE 0 END) AS hits").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("user_id = ?", userID).
		Where("created_at >= ?", since).
		GroupExpr("(created_at + ?) / 86400", offsetSecs).
		OrderExpr("day_index ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query user day buckets: %w", err)
	}
	return rows, nil
}

// DayTotalsByUser sums one action type per user per guild-local day.
func (r *Impl) DayTotalsByUser(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, offsetSecs, since int64) ([]UserDayTotal, error) {
	db = r.resolveDB(db)
	var rows []UserDayTotal
	err := db.NewSelect().
		Model((*Action)(nil)).
		Column("user_id").
		ColumnExpr("(created_at + ?) / 86400 AS day_index", offsetSecs).
		ColumnExpr("SUM(value) AS total").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("type = ?", actionType).
		Where("created_at >= ?", since).
		Group("user_id").
		GroupExpr("(created_at + ?) / 86400", offsetSecs).
		OrderExpr("day_index ASC, total DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query day totals by user: %w", err)
	}
	return rows, nil
}

// AllUserDayBuckets sums builds and hits per user per guild-local day.
func (r *Impl) AllUserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]UserDayBucket, error) {
	db = r.resolveDB(db)
	var rows []UserDayBucket
	err := db.NewSelect().
		Model((*Action)(nil)).
		Column("user_id").
		ColumnExpr("(created_at + ?) / 86400 AS day_index", offsetSecs).
		ColumnExpr("SUM(CASE WHEN type = 'build' THEN value ELSE 0 END) AS builds").
		ColumnExpr("SUM(CASE WHEN type = 'hit' THEN value ELSE 0 END) AS hits").
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("created_at >= ?", since).
		Group("user_id").
		GroupExpr("(created_at + ?) / 86400", offsetSecs).
		OrderExpr("day_index ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-user day buckets: %w", err)
	}
	return rows, nil
}

// ExportRows aggregates per user per guild-local day, joined with the member
// cache for display metadata. A nil since exports the whole season.
func (r *Impl) ExportRows(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs int64, since *int64) ([]ExportRow, error) {
	db = r.resolveDB(db)
	var rows []ExportRow
	q := db.NewSelect().
		Model((*Action)(nil)).
		ColumnExpr("(a.created_at + ?) / 86400 AS day_index", offsetSecs).
		ColumnExpr("a.user_id AS user_id").
		ColumnExpr("COALESCE(m.bot_role, '') AS bot_role").
		ColumnExpr("COALESCE(m.nickname, '') AS nickname").
		ColumnExpr("COALESCE(m.global_name, '') AS global_name").
		ColumnExpr("COALESCE(m.username, '') AS username").
		ColumnExpr("SUM(CASE WHEN a.type = 'build' THEN a.value ELSE 0 END) AS builds").
		ColumnExpr("SUM(CASE WHEN a.type = 'hit' THEN a.value ELSE 0 END) AS hits").
		ColumnExpr("COALESCE(m.valor, 0) AS valor").
		Join("LEFT JOIN members AS m ON m.guild_id = a.guild_id AND m.user_id = a.user_id").
		Where("a.guild_id = ?", guildID).
		Where("a.season_id = ?", seasonID).
		GroupExpr("(a.created_at + ?) / 86400, a.user_id, m.bot_role, m.nickname, m.global_name, m.username, m.valor", offsetSecs).
		OrderExpr("day_index ASC, builds DESC, hits DESC")
	if since != nil {
		q = q.Where("a.created_at >= ?", *since)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	return rows, nil
}
