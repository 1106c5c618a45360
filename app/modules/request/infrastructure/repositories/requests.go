package requestdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrNotFound is returned when a request row is not found.
	ErrNotFound = errors.New("request not found")
	// ErrRequestExists is returned when inserting a request whose
	// (guild, season, message) key is already taken.
	ErrRequestExists = errors.New("request already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new request repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Insert creates a new open request.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, request *Request) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(request).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrRequestExists
		}
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// Get retrieves a single request row.
func (r *Impl) Get(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*Request, error) {
	db = r.resolveDB(db)
	request := new(Request)
	err := db.NewSelect().
		Model(request).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("message_id = ?", messageID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

// Claim moves an open request to claimed. The status guard makes the update
// a no-op for any other state, so of two racing claimants exactly one sees
// a row count of 1.
func (r *Impl) Claim(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Request)(nil)).
		Set("status = ?", StatusClaimed).
		Set("claimed_by = ?", builderID).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("message_id = ?", messageID).
		Where("status = ?", StatusOpen).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim request: %w", err)
	}
	return oneRowAffected(res)
}

// Complete moves a claimed request to completed, but only for the builder
// who claimed it. The claimant check lives in the WHERE clause so a stale
// completion from anyone else is rejected by the store itself.
func (r *Impl) Complete(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, now int64) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Request)(nil)).
		Set("status = ?", StatusCompleted).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("message_id = ?", messageID).
		Where("status = ?", StatusClaimed).
		Where("claimed_by = ?", builderID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to complete request: %w", err)
	}
	return oneRowAffected(res)
}

// Cancel moves an open or claimed request to cancelled, recording who
// cancelled it in the request metadata.
func (r *Impl) Cancel(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID, now int64) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Request)(nil)).
		Set("status = ?", StatusCancelled).
		Set("meta = ?", map[string]any{"cancelled_by": string(cancelledBy)}).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("message_id = ?", messageID).
		Where("status IN (?)", bun.In([]Status{StatusOpen, StatusClaimed})).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to cancel request: %w", err)
	}
	return oneRowAffected(res)
}

// SetMeta replaces the request's side-channel metadata regardless of status.
func (r *Impl) SetMeta(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any, now int64) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Request)(nil)).
		Set("meta = ?", meta).
		Set("updated_at = ?", now).
		Where("guild_id = ?", guildID).
		Where("season_id = ?", seasonID).
		Where("message_id = ?", messageID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to set request meta: %w", err)
	}
	return oneRowAffected(res)
}

func oneRowAffected(res sql.Result) (bool, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
