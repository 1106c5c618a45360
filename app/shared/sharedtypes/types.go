// Package sharedtypes holds the scalar identifier types shared by every module.
package sharedtypes

// GuildID is an opaque tenant id supplied by the chat platform.
type GuildID string

// UserID identifies a member within a guild.
type UserID string

// SeasonID is a guild-scoped, monotonically introduced season number.
// It is not globally unique; (GuildID, SeasonID) is.
type SeasonID int64

// MessageID is the externally supplied unique handle of the chat message
// representing a build request.
type MessageID string

// ActionType is the kind of point event recorded for a user.
type ActionType string

const (
	ActionBuild ActionType = "build"
	ActionHit   ActionType = "hit"
)
