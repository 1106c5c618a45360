package guildservice

import "errors"

// ErrInvalidOffset is returned when a timezone offset falls outside the
// supported [-720, 840] minute range.
var ErrInvalidOffset = errors.New("timezone offset out of range")
