package seasonservice

import (
	"context"

	seasondb "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Season Repo
// ------------------------

type FakeSeasonRepo struct {
	trace []string

	GetActiveFunc     func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*seasondb.Season, error)
	ExistsFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error)
	ListFunc          func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]seasondb.Season, error)
	DeactivateAllFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) error
	UpsertActiveFunc  func(ctx context.Context, db bun.IDB, season *seasondb.Season) error
}

func NewFakeSeasonRepo() *FakeSeasonRepo {
	return &FakeSeasonRepo{trace: []string{}}
}

func (f *FakeSeasonRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSeasonRepo) GetActive(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*seasondb.Season, error) {
	f.record("GetActive")
	if f.GetActiveFunc != nil {
		return f.GetActiveFunc(ctx, db, guildID)
	}
	return nil, seasondb.ErrNotFound
}

func (f *FakeSeasonRepo) Exists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, db, guildID, seasonID)
	}
	return false, nil
}

func (f *FakeSeasonRepo) List(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) ([]seasondb.Season, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, guildID)
	}
	return nil, nil
}

func (f *FakeSeasonRepo) DeactivateAll(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) error {
	f.record("DeactivateAll")
	if f.DeactivateAllFunc != nil {
		return f.DeactivateAllFunc(ctx, db, guildID)
	}
	return nil
}

func (f *FakeSeasonRepo) UpsertActive(ctx context.Context, db bun.IDB, season *seasondb.Season) error {
	f.record("UpsertActive")
	if f.UpsertActiveFunc != nil {
		return f.UpsertActiveFunc(ctx, db, season)
	}
	return nil
}

func (f *FakeSeasonRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ seasondb.Repository = (*FakeSeasonRepo)(nil)

// ------------------------
// Fake Guild Registry
// ------------------------

type FakeGuildRegistry struct {
	EnsureGuildFunc func(ctx context.Context, guildID sharedtypes.GuildID) error
	ensured         []sharedtypes.GuildID
}

func (f *FakeGuildRegistry) EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error {
	f.ensured = append(f.ensured, guildID)
	if f.EnsureGuildFunc != nil {
		return f.EnsureGuildFunc(ctx, guildID)
	}
	return nil
}

var _ GuildRegistry = (*FakeGuildRegistry)(nil)
