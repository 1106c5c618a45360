package guildservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	guilddb "github.com/forgehall/forge-bot/app/modules/guild/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

const (
	minOffsetMinutes = -720
	maxOffsetMinutes = 840
)

// GuildService implements the Service interface.
type GuildService struct {
	repo   guilddb.Repository
	logger *slog.Logger
	db     *bun.DB
	now    func() time.Time
}

// NewGuildService creates a new GuildService.
func NewGuildService(repo guilddb.Repository, logger *slog.Logger, db *bun.DB) *GuildService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuildService{
		repo:   repo,
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

// EnsureGuild creates the guild row if it does not exist yet.
func (s *GuildService) EnsureGuild(ctx context.Context, guildID sharedtypes.GuildID) error {
	return s.repo.EnsureGuild(ctx, nil, guildID, s.now().Unix())
}

// Settings returns the guild's settings row, or nil when none has been saved.
func (s *GuildService) Settings(ctx context.Context, guildID sharedtypes.GuildID) (*guilddb.GuildSettings, error) {
	settings, err := s.repo.GetSettings(ctx, nil, guildID)
	if err != nil {
		if errors.Is(err, guilddb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return settings, nil
}

// SaveSettings merges the patch into the stored settings. Absent patch fields
// keep their stored values.
func (s *GuildService) SaveSettings(ctx context.Context, guildID sharedtypes.GuildID, patch SettingsPatch) error {
	if patch.TimezoneOffsetMinutes != nil {
		if o := *patch.TimezoneOffsetMinutes; o < minOffsetMinutes || o > maxOffsetMinutes {
			return fmt.Errorf("%w: %d", ErrInvalidOffset, o)
		}
	}

	now := s.now().Unix()

	return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		if err := s.repo.EnsureGuild(ctx, db, guildID, now); err != nil {
			return err
		}

		settings, err := s.repo.GetSettings(ctx, db, guildID)
		if err != nil {
			if !errors.Is(err, guilddb.ErrNotFound) {
				return err
			}
			settings = &guilddb.GuildSettings{
				GuildID:               guildID,
				TimezoneOffsetMinutes: guilddb.DefaultTimezoneOffsetMinutes,
			}
		}

		applyPatch(settings, patch)
		settings.UpdatedAt = now

		return s.repo.UpsertSettings(ctx, db, settings)
	})
}

// TimezoneOffset returns the guild's reporting offset in minutes from UTC,
// falling back to the default when no settings row exists.
func (s *GuildService) TimezoneOffset(ctx context.Context, guildID sharedtypes.GuildID) (int, error) {
	settings, err := s.repo.GetSettings(ctx, nil, guildID)
	if err != nil {
		if errors.Is(err, guilddb.ErrNotFound) {
			return guilddb.DefaultTimezoneOffsetMinutes, nil
		}
		return 0, err
	}
	return settings.TimezoneOffsetMinutes, nil
}

func applyPatch(settings *guilddb.GuildSettings, patch SettingsPatch) {
	if patch.RolesChannelID != nil {
		settings.RolesChannelID = *patch.RolesChannelID
	}
	if patch.RolesMessageID != nil {
		settings.RolesMessageID = *patch.RolesMessageID
	}
	if patch.RoleBuilderID != nil {
		settings.RoleBuilderID = *patch.RoleBuilderID
	}
	if patch.RoleStrikerID != nil {
		settings.RoleStrikerID = *patch.RoleStrikerID
	}
	if patch.RolePinkcleanerID != nil {
		settings.RolePinkcleanerID = *patch.RolePinkcleanerID
	}
	if patch.RolePlayerID != nil {
		settings.RolePlayerID = *patch.RolePlayerID
	}
	if patch.TimezoneOffsetMinutes != nil {
		settings.TimezoneOffsetMinutes = *patch.TimezoneOffsetMinutes
	}
}

func (s *GuildService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

var _ Service = (*GuildService)(nil)
