package memberservice

import (
	"context"
	"log/slog"
	"testing"

	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrString(s string) *string { return &s }

func TestUpsert(t *testing.T) {
	const (
		guildID = sharedtypes.GuildID("guild-1")
		userID  = sharedtypes.UserID("user-1")
	)

	t.Run("name fields stamp name_updated_at", func(t *testing.T) {
		var gotNameUpdatedAt *int64
		fakeRepo := NewFakeMemberRepo()
		fakeRepo.UpdateMetaFunc = func(ctx context.Context, db bun.IDB, g sharedtypes.GuildID, u sharedtypes.UserID, patch memberdb.MetaPatch, nameUpdatedAt *int64, now int64) error {
			gotNameUpdatedAt = nameUpdatedAt
			return nil
		}

		svc := NewMemberService(fakeRepo, &FakeGuildRegistry{}, slog.Default(), nil)

		err := svc.Upsert(context.Background(), guildID, userID, memberdb.MetaPatch{
			Username: ptrString("alice"),
		})
		require.NoError(t, err)
		assert.NotNil(t, gotNameUpdatedAt)
		assert.Equal(t, []string{"InsertIfMissing", "UpdateMeta"}, fakeRepo.Trace())
	})

	t.Run("role-only update does not stamp name_updated_at", func(t *testing.T) {
		var gotNameUpdatedAt *int64
		fakeRepo := NewFakeMemberRepo()
		fakeRepo.UpdateMetaFunc = func(ctx context.Context, db bun.IDB, g sharedtypes.GuildID, u sharedtypes.UserID, patch memberdb.MetaPatch, nameUpdatedAt *int64, now int64) error {
			gotNameUpdatedAt = nameUpdatedAt
			return nil
		}

		svc := NewMemberService(fakeRepo, &FakeGuildRegistry{}, slog.Default(), nil)

		err := svc.Upsert(context.Background(), guildID, userID, memberdb.MetaPatch{
			BotRole: ptrString("builder"),
		})
		require.NoError(t, err)
		assert.Nil(t, gotNameUpdatedAt)
	})
}

func TestValorDefaultsToZero(t *testing.T) {
	fakeRepo := NewFakeMemberRepo()
	svc := NewMemberService(fakeRepo, &FakeGuildRegistry{}, slog.Default(), nil)

	valor, err := svc.Valor(context.Background(), "guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), valor)
}

func TestSetValorCreatesRowFirst(t *testing.T) {
	fakeRepo := NewFakeMemberRepo()
	var gotValor int64
	fakeRepo.SetValorFunc = func(ctx context.Context, db bun.IDB, g sharedtypes.GuildID, u sharedtypes.UserID, valor int64, now int64) error {
		gotValor = valor
		return nil
	}

	svc := NewMemberService(fakeRepo, &FakeGuildRegistry{}, slog.Default(), nil)

	err := svc.SetValor(context.Background(), "guild-1", "user-1", 5_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000_000), gotValor)
	assert.Equal(t, []string{"InsertIfMissing", "SetValor"}, fakeRepo.Trace())
}
