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
		log.Println("creating donations table...")
		if err := mghelper.CreateSchema(ctx, db, &donationstore.DonationDao{}); err != nil {
			return err
		}
		// Donation history is listed per campaign
		return mghelper.CreateModelIndexes(ctx, db, &donationstore.DonationDao{}, "campaign_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping donations table...")
		return mghelper.DropTables(ctx, db, &donationstore.DonationDao{})
	})
}
