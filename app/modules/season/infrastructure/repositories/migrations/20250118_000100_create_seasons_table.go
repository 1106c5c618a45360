package migrations

import (
	"context"

	seasondb "github.com/forgehall/forge-bot/app/modules/season/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewCreateTable().Model((*seasondb.Season)(nil)).IfNotExists().Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDropTable().Model((*seasondb.Season)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
