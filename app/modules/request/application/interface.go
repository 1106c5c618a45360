package requestservice

import (
	"context"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	requestdb "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories"
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
)

// Service is the build-request lifecycle. Transition operations return false
// when the row was not in the required state, which is an expected outcome
// under concurrent use, not an error.
type Service interface {
	Create(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, requesterID sharedtypes.UserID, levels []int) error
	Get(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID) (*requestdb.Request, error)
	Claim(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID) (bool, error)
	Complete(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, builderID sharedtypes.UserID, levels []int) (bool, error)
	Cancel(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, cancelledBy sharedtypes.UserID) (bool, error)
	SetMeta(ctx context.Context, guildID sharedtypes.GuildID, seasonID sharedtypes.SeasonID, messageID sharedtypes.MessageID, meta map[string]any) (bool, error)
}

// ActionQueue receives the events derived from a confirmed completion.
// Implemented by the activity write-behind buffer.
type ActionQueue interface {
	Enqueue(action *activitydb.Action)
}
