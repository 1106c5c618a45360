package guildservice

import (
	"context"

	guilddb "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Guild Repo
// ------------------------

type FakeGuildRepo struct {
	trace []string

	EnsureGuildFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, now int64) error
	GetSettingsFunc    func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*guilddb.GuildSettings, error)
	UpsertSettingsFunc func(ctx context.Context, db bun.IDB, settings *guilddb.GuildSettings) error
}

func NewFakeGuildRepo() *FakeGuildRepo {
	return &FakeGuildRepo{trace: []string{}}
}

func (f *FakeGuildRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGuildRepo) EnsureGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, now int64) error {
	f.record("EnsureGuild")
	if f.EnsureGuildFunc != nil {
		return f.EnsureGuildFunc(ctx, db, guildID, now)
	}
	return nil
}

func (f *FakeGuildRepo) GetSettings(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID) (*guilddb.GuildSettings, error) {
	f.record("GetSettings")
	if f.GetSettingsFunc != nil {
		return f.GetSettingsFunc(ctx, db, guildID)
	}
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepo) UpsertSettings(ctx context.Context, db bun.IDB, settings *guilddb.GuildSettings) error {
	f.record("UpsertSettings")
	if f.UpsertSettingsFunc != nil {
		return f.UpsertSettingsFunc(ctx, db, settings)
	}
	return nil
}

func (f *FakeGuildRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ guilddb.Repository = (*FakeGuildRepo)(nil)
