package migrations

import (
	"context"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*activitydb.Action)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// Every aggregate filters on (guild, season) and most on created_at.
			_, err := db.NewCreateIndex().
				Model((*activitydb.Action)(nil)).
				Index("actions_guild_season_created_idx").
				IfNotExists().
				Column("guild_id", "season_id", "created_at").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewDropIndex().Index("actions_guild_season_created_idx").IfExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewDropTable().Model((*activitydb.Action)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
