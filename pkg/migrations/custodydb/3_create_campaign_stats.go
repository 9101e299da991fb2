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
		log.Println("creating campaign_stats table...")
		return mghelper.CreateSchema(ctx, db, &donationstore.StatsDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping campaign_stats table...")
		return mghelper.DropTables(ctx, db, &donationstore.StatsDao{})
	})
}
