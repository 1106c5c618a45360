package migrations

import (
	"context"

	memberdb "github.com/forgehall/forge-bot/app/modules/member/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewCreateTable().Model((*memberdb.Member)(nil)).IfNotExists().Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDropTable().Model((*memberdb.Member)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
