package activityservice

import (
	"context"
	"sync"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Action Repo
// ------------------------

type FakeActionRepo struct {
	mu       sync.Mutex
	inserted []*activitydb.Action

	InsertBatchFunc       func(ctx context.Context, db bun.IDB, actions []*activitydb.Action) error
	LeaderboardTotalsFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]activitydb.UserTotal, error)
	UserTotalsFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, since *int64) ([]activitydb.UserBuildHit, error)
	DayBucketsFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]activitydb.DayBucket, error)
	UserDayBucketsFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, offsetSecs, since int64) ([]activitydb.DayBucket, error)
	DayTotalsByUserFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, offsetSecs, since int64) ([]activitydb.UserDayTotal, error)
	AllUserDayBucketsFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]activitydb.UserDayBucket, error)
	ExportRowsFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs int64, since *int64) ([]activitydb.ExportRow, error)
}

func NewFakeActionRepo() *FakeActionRepo {
	return &FakeActionRepo{}
}

func (f *FakeActionRepo) InsertBatch(ctx context.Context, db bun.IDB, actions []*activitydb.Action) error {
	if f.InsertBatchFunc != nil {
		if err := f.InsertBatchFunc(ctx, db, actions); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.inserted = append(f.inserted, actions...)
	f.mu.Unlock()
	return nil
}

// Inserted returns every action persisted so far.
func (f *FakeActionRepo) Inserted() []*activitydb.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*activitydb.Action, len(f.inserted))
	copy(out, f.inserted)
	return out
}

func (f *FakeActionRepo) LeaderboardTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, limit int) ([]activitydb.UserTotal, error) {
	if f.LeaderboardTotalsFunc != nil {
		return f.LeaderboardTotalsFunc(ctx, db, guildID, seasonID, actionType, limit)
	}
	return nil, nil
}

func (f *FakeActionRepo) UserTotals(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, since *int64) ([]activitydb.UserBuildHit, error) {
	if f.UserTotalsFunc != nil {
		return f.UserTotalsFunc(ctx, db, guildID, seasonID, since)
	}
	return nil, nil
}

func (f *FakeActionRepo) DayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]activitydb.DayBucket, error) {
	if f.DayBucketsFunc != nil {
		return f.DayBucketsFunc(ctx, db, guildID, seasonID, offsetSecs, since)
	}
	return nil, nil
}

func (f *FakeActionRepo) UserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, userID sharedtypes.UserID, offsetSecs, since int64) ([]activitydb.DayBucket, error) {
	if f.UserDayBucketsFunc != nil {
		return f.UserDayBucketsFunc(ctx, db, guildID, seasonID, userID, offsetSecs, since)
	}
	return nil, nil
}

func (f *FakeActionRepo) DayTotalsByUser(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, actionType sharedtypes.ActionType, offsetSecs, since int64) ([]activitydb.UserDayTotal, error) {
	if f.DayTotalsByUserFunc != nil {
		return f.DayTotalsByUserFunc(ctx, db, guildID, seasonID, actionType, offsetSecs, since)
	}
	return nil, nil
}

func (f *FakeActionRepo) AllUserDayBuckets(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs, since int64) ([]activitydb.UserDayBucket, error) {
	if f.AllUserDayBucketsFunc != nil {
		return f.AllUserDayBucketsFunc(ctx, db, guildID, seasonID, offsetSecs, since)
	}
	return nil, nil
}

func (f *FakeActionRepo) ExportRows(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, offsetSecs int64, since *int64) ([]activitydb.ExportRow, error) {
	if f.ExportRowsFunc != nil {
		return f.ExportRowsFunc(ctx, db, guildID, seasonID, offsetSecs, since)
	}
	return nil, nil
}

var _ activitydb.Repository = (*FakeActionRepo)(nil)

// ------------------------
// Fake Offset Source
// ------------------------

type FakeOffsetSource struct {
	Offset int
	Err    error
}

func (f *FakeOffsetSource) TimezoneOffset(ctx context.Context, guildID sharedtypes.GuildID) (int, error) {
	return f.Offset, f.Err
}

var _ OffsetSource = (*FakeOffsetSource)(nil)
