package custodydb

import (
	"context"
	"log"

	"github.com/solfund/custody-middleware/pkg/donationstore"
	mghelper "github.com/solfund/custody-middleware/pkg/pgutil/migrations"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating sync_cursors table...")
		return mghelper.CreateSchema(ctx, db, &donationstore.SyncCursorDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping sync_cursors table...")
		return mghelper.DropTables(ctx, db, &donationstore.SyncCursorDao{})
	})
}
