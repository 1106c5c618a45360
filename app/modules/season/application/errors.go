package seasonservice

import "errors"

// ErrSeasonExists is returned when starting a season whose id was already
// introduced for the guild.
var ErrSeasonExists = errors.New("season already exists")
