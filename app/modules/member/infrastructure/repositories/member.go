package memberdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a member row is not found.
var ErrNotFound = errors.New("member not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new member repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// InsertIfMissing inserts the member row, leaving an existing row untouched.
func (r *Impl) InsertIfMissing(ctx context.Context, db bun.IDB, member *Member) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(member).
		On("CONFLICT (guild_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// UpdateMeta applies a partial metadata update. Nil patch fields keep the
// stored value (COALESCE), so a partial update never clears cached names.
func (r *Impl) UpdateMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch MetaPatch, nameUpdatedAt *int64, now int64) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Member)(nil)).
		Set("bot_role = COALESCE(?, bot_role)", patch.BotRole).
		Set("username = COALESCE(?, username)", patch.Username).
		Set("global_name = COALESCE(?, global_name)", patch.GlobalName).
		Set("nickname = COALESCE(?, nickname)", patch.Nickname).
		Set("name_updated_at = COALESCE(?, name_updated_at)", nameUpdatedAt).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member meta: %w", err)
	}
	return nil
}

// Get retrieves a member row.
func (r *Impl) Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := db.NewSelect().
		Model(member).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetByIDs retrieves the cached rows for a set of users in one query.
// Users without a cache row are simply absent from the result.
func (r *Impl) GetByIDs(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]Member, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var members []Member
	err := db.NewSelect().
		Model(&members).
		Where("guild_id = ?", guildID).
		Where("user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get members by ids: %w", err)
	}
	return members, nil
}

// SetValor overwrites the member's cached valor magnitude.
func (r *Impl) SetValor(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64, now int64) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Member)(nil)).
		Set("valor = ?", valor).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set member valor: %w", err)
	}
	return nil
}
