package memberservice

import (
	"context"

	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Member Repo
// ------------------------

type FakeMemberRepo struct {
	trace []string

	InsertIfMissingFunc func(ctx context.Context, db bun.IDB, member *memberdb.Member) error
	UpdateMetaFunc      func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch memberdb.MetaPatch, nameUpdatedAt *int64, now int64) error
	GetFunc             func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*memberdb.Member, error)
	GetByIDsFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]memberdb.Member, error)
	SetValorFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64, now int64) error
}

func NewFakeMemberRepo() *FakeMemberRepo {
	return &FakeMemberRepo{trace: []string{}}
}

func (f *FakeMemberRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMemberRepo) InsertIfMissing(ctx context.Context, db bun.IDB, member *memberdb.Member) error {
	f.record("InsertIfMissing")
	if f.InsertIfMissingFunc != nil {
		return f.InsertIfMissingFunc(ctx, db, member)
	}
	return nil
}

func (f *FakeMemberRepo) UpdateMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch memberdb.MetaPatch, nameUpdatedAt *int64, now int64) error {
	f.record("UpdateMeta")
	if f.UpdateMetaFunc != nil {
		return f.UpdateMetaFunc(ctx, db, guildID, userID, patch, nameUpdatedAt, now)
	}
	return nil
}

func (f *FakeMemberRepo) Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*memberdb.Member, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, guildID, userID)
	}
	return nil, memberdb.ErrNotFound
}

func (f *FakeMemberRepo) GetByIDs(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]memberdb.Member, error) {
	f.record("GetByIDs")
	if f.GetByIDsFunc != nil {
		return f.GetByIDsFunc(ctx, db, guildID, userIDs)
	}
	return nil, nil
}

func (f *FakeMemberRepo) SetValor(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64, now int64) error {
	f.record("SetValor")
	if f.SetValorFunc != nil {
		return f.SetValorFunc(ctx, db, guildID, userID, valor, now)
	}
	return nil
}

func (f *FakeMemberRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ memberdb.Repository = (*FakeMemberRepo)(nil)

// ------------------------
// Fake Guild Registry
// ------------------------

type FakeGuildRegistry struct {
	EnsureGuildFunc func(ctx context.Context, guildID sharedtypes.GuildID) error
}

func (f *FakeGuildRegistry) EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error {
	if f.EnsureGuildFunc != nil {
		return f.EnsureGuildFunc(ctx, guildID)
	}
	return nil
}

var _ GuildRegistry = (*FakeGuildRegistry)(nil)
