package memberservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// MemberService implements the Service interface.
type MemberService struct {
	repo   memberdb.Repository
	guilds GuildRegistry
	logger *slog.Logger
	db     *bun.DB
	now    func() time.Time
}

// NewMemberService creates a new MemberService.
func NewMemberService(repo memberdb.Repository, guilds GuildRegistry, logger *slog.Logger, db *bun.DB) *MemberService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberService{
		repo:   repo,
		guilds: guilds,
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

// Upsert records observed member metadata. The row is created on first sight;
// nil patch fields never clear previously cached values.
func (s *MemberService) Upsert(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, patch memberdb.MetaPatch) error {
	if err := s.guilds.EnsureGuild(ctx, guildID); err != nil {
		return err
	}

	now := s.now().Unix()

	var nameUpdatedAt *int64
	if patch.Username != nil || patch.GlobalName != nil || patch.Nickname != nil {
		nameUpdatedAt = &now
	}

	member := &memberdb.Member{
		GuildID:   guildID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if patch.BotRole != nil {
		member.BotRole = *patch.BotRole
	}
	if patch.Username != nil {
		member.Username = *patch.Username
	}
	if patch.GlobalName != nil {
		member.GlobalName = *patch.GlobalName
	}
	if patch.Nickname != nil {
		member.Nickname = *patch.Nickname
	}
	if nameUpdatedAt != nil {
		member.NameUpdatedAt = *nameUpdatedAt
	}

	if err := s.repo.InsertIfMissing(ctx, nil, member); err != nil {
		return err
	}
	return s.repo.UpdateMeta(ctx, nil, guildID, userID, patch, nameUpdatedAt, now)
}

// Get returns the cached member row, or nil when the user was never observed.
func (s *MemberService) Get(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*memberdb.Member, error) {
	member, err := s.repo.Get(ctx, nil, guildID, userID)
	if err != nil {
		if errors.Is(err, memberdb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// GetByIDs returns the cached rows for a set of users.
func (s *MemberService) GetByIDs(ctx context.Context, guildID sharedtypes.GuildID, userIDs []sharedtypes.UserID) ([]memberdb.Member, error) {
	return s.repo.GetByIDs(ctx, nil, guildID, userIDs)
}

// Valor returns the member's cached valor, 0 when the user was never observed.
func (s *MemberService) Valor(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (int64, error) {
	member, err := s.repo.Get(ctx, nil, guildID, userID)
	if err != nil {
		if errors.Is(err, memberdb.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return member.Valor, nil
}

// SetValor caches an externally computed valor magnitude on the member row,
// creating the row first when needed.
func (s *MemberService) SetValor(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, valor int64) error {
	if err := s.guilds.EnsureGuild(ctx, guildID); err != nil {
		return err
	}

	now := s.now().Unix()
	member := &memberdb.Member{
		GuildID:   guildID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertIfMissing(ctx, nil, member); err != nil {
		return err
	}
	return s.repo.SetValor(ctx, nil, guildID, userID, valor, now)
}

var _ Service = (*MemberService)(nil)
