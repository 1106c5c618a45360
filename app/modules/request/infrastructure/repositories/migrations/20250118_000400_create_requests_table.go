package migrations

import (
	"context"

	requestdb "github.com/forgehall/forge-bot/app/modules/request/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*requestdb.Request)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			// Lifecycle queries look up open/claimed requests per guild.
			_, err := db.NewCreateIndex().
				Model((*requestdb.Request)(nil)).
				Index("requests_guild_status_idx").
				IfNotExists().
				Column("guild_id", "season_id", "status").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewDropIndex().Index("requests_guild_status_idx").IfExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewDropTable().Model((*requestdb.Request)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
