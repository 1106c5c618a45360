package requestdb

import (
	"github.com/forgehall/forge-bot/app/shared/sharedtypes"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of a build request.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClaimed   Status = "claimed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Request is one tracked build request, keyed by the chat message that
// represents it. Open requests move to claimed, then completed; open or
// claimed requests may be cancelled. Completed and cancelled are terminal.
type Request struct {
	bun.BaseModel `bun:"table:requests,alias:r"`

	GuildID     sharedtypes.GuildID   `bun:"guild_id,pk,type:varchar(20)"`
	SeasonID    sharedtypes.SeasonID  `bun:"season_id,pk"`
	MessageID   sharedtypes.MessageID `bun:"message_id,pk,type:varchar(20)"`
	RequesterID sharedtypes.UserID    `bun:"requester_id,notnull,type:varchar(20)"`
	Levels      []int                 `bun:"levels,notnull,type:jsonb"`
	Status      Status                `bun:"status,notnull,type:varchar(10)"`
	ClaimedBy   *sharedtypes.UserID   `bun:"claimed_by,type:varchar(20)"`
	Meta        map[string]any        `bun:"meta,type:jsonb"`
	CreatedAt   int64                 `bun:"created_at,notnull"`
	UpdatedAt   int64                 `bun:"updated_at,notnull"`
}
