package requestservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	requestdb "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// RequestService implements the Service interface.
type RequestService struct {
	repo   requestdb.Repository
	queue  ActionQueue
	logger *slog.Logger
	db     *bun.DB
	now    func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(repo requestdb.Repository, queue ActionQueue, logger *slog.Logger, db *bun.DB) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		repo:   repo,
		queue:  queue,
		logger: logger,
		db:     db,
		now:    time.Now,
	}
}

// Create inserts a new open request. The caller has already validated the
// levels sequence and guarantees a fresh message id; a duplicate key
// surfaces as requestdb.ErrRequestExists.
func (s *RequestService) Create(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, requesterID sharedtypes.UserID, levels []int) error {
	now := s.now().Unix()
	return s.repo.Insert(ctx, nil, &requestdb.Request{
		GuildID:     guildID,
		SeasonID:    seasonID,
		MessageID:   messageID,
		RequesterID: requesterID,
		Levels:      levels,
		Status:      requestdb.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Get returns the request, or nil when it does not exist.
func (s *RequestService) Get(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*requestdb.Request, error) {
	request, err := s.repo.Get(ctx, nil, guildID, seasonID, messageID)
	if err != nil {
		if errors.Is(err, requestdb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return request, nil
}

// Claim assigns an open request to a builder. Exactly one of any number of
// concurrent claimants succeeds; the rest get false.
func (s *RequestService) Claim(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID) (bool, error) {
	claimed, err := s.repo.Claim(ctx, nil, guildID, seasonID, messageID, builderID, s.now().Unix())
	if err != nil {
		return false, err
	}
	if claimed {
		s.logger.InfoContext(ctx, "request claimed",
			"guild_id", guildID, "season_id", seasonID, "message_id", messageID, "builder_id", builderID)
	}
	return claimed, nil
}

// Complete finishes a claimed request and derives its activity events: one
// hit of value 1 per level, plus one build whose value is the level count.
// The status flip commits on its own; events only reach the queue once the
// flip is confirmed, so a losing racer buffers nothing.
func (s *RequestService) Complete(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, levels []int) (bool, error) {
	now := s.now().Unix()

	completed, err := s.repo.Complete(ctx, nil, guildID, seasonID, messageID, builderID, now)
	if err != nil {
		return false, err
	}
	if !completed {
		return false, nil
	}

	for _, action := range deriveActions(guildID, seasonID, messageID, builderID, levels, now) {
		s.queue.Enqueue(action)
	}

	s.logger.InfoContext(ctx, "request completed",
		"guild_id", guildID, "season_id", seasonID, "message_id", messageID,
		"builder_id", builderID, "levels", levels)
	return true, nil
}

// Cancel terminates an open or claimed request. No events are emitted.
func (s *RequestService) Cancel(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID) (bool, error) {
	cancelled, err := s.repo.Cancel(ctx, nil, guildID, seasonID, messageID, cancelledBy, s.now().Unix())
	if err != nil {
		return false, err
	}
	if cancelled {
		s.logger.InfoContext(ctx, "request cancelled",
			"guild_id", guildID, "season_id", seasonID, "message_id", messageID, "cancelled_by", cancelledBy)
	}
	return cancelled, nil
}

// SetMeta replaces the request's bookkeeping metadata in any status.
func (s *RequestService) SetMeta(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any) (bool, error) {
	return s.repo.SetMeta(ctx, nil, guildID, seasonID, messageID, meta, s.now().Unix())
}

func deriveActions(guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, levels []int, now int64) []*activitydb.Action {
	actions := make([]*activitydb.Action, 0, len(levels)+1)

	// One hit per level keeps per-level granularity for later analysis.
	for _, level := range levels {
		actions = append(actions, &activitydb.Action{
			GuildID:   guildID,
			SeasonID:  seasonID,
			UserID:    builderID,
			Type:      sharedtypes.ActionHit,
			Value:     1,
			Meta:      map[string]any{"level": level, "message_id": string(messageID)},
			CreatedAt: now,
		})
	}

	actions = append(actions, &activitydb.Action{
		GuildID:   guildID,
		SeasonID:  seasonID,
		UserID:    builderID,
		Type:      sharedtypes.ActionBuild,
		Value:     int64(len(levels)),
		Meta:      map[string]any{"message_id": string(messageID), "levels": levels},
		CreatedAt: now,
	})

	return actions
}

var _ Service = (*RequestService)(nil)
