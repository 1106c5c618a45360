package requestservice

import (
	"context"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	requestdb "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Request Repo
// ------------------------

type FakeRequestRepo struct {
	trace []string

	InsertFunc   func(ctx context.Context, db bun.IDB, request *requestdb.Request) error
	GetFunc      func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*requestdb.Request, error)
	ClaimFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error)
	CompleteFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error)
	CancelFunc   func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID, now int64) (bool, error)
	SetMetaFunc  func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any, now int64) (bool, error)
}

func NewFakeRequestRepo() *FakeRequestRepo {
	return &FakeRequestRepo{trace: []string{}}
}

func (f *FakeRequestRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRequestRepo) Insert(ctx context.Context, db bun.IDB, request *requestdb.Request) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, request)
	}
	return nil
}

func (f *FakeRequestRepo) Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*requestdb.Request, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, guildID, seasonID, messageID)
	}
	return nil, requestdb.ErrNotFound
}

func (f *FakeRequestRepo) Claim(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error) {
	f.record("Claim")
	if f.ClaimFunc != nil {
		return f.ClaimFunc(ctx, db, guildID, seasonID, messageID, builderID, now)
	}
	return true, nil
}

func (f *FakeRequestRepo) Complete(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error) {
	f.record("Complete")
	if f.CompleteFunc != nil {
		return f.CompleteFunc(ctx, db, guildID, seasonID, messageID, builderID, now)
	}
	return true, nil
}

func (f *FakeRequestRepo) Cancel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID, now int64) (bool, error) {
	f.record("Cancel")
	if f.CancelFunc != nil {
		return f.CancelFunc(ctx, db, guildID, seasonID, messageID, cancelledBy, now)
	}
	return true, nil
}

func (f *FakeRequestRepo) SetMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any, now int64) (bool, error) {
	f.record("SetMeta")
	if f.SetMetaFunc != nil {
		return f.SetMetaFunc(ctx, db, guildID, seasonID, messageID, meta, now)
	}
	return true, nil
}

func (f *FakeRequestRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ requestdb.Repository = (*FakeRequestRepo)(nil)

// ------------------------
// Fake Action Queue
// ------------------------

type FakeActionQueue struct {
	enqueued []*activitydb.Action
}

func (f *FakeActionQueue) Enqueue(action *activitydb.Action) {
	f.enqueued = append(f.enqueued, action)
}

var _ ActionQueue = (*FakeActionQueue)(nil)
