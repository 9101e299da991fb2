package custodydb

import (
	"context"
	"log"

	mghelper "github.com/solfund/custody-middleware/pkg/pgutil/migrations"
	"github.com/solfund/custody-middleware/pkg/walletstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating campaign_wallets table...")
		if err := mghelper.CreateSchema(ctx, db, &walletstore.WalletDao{}); err != nil {
			return err
		}
		// The poller and ingester both scan by redemption state
		return mghelper.CreateModelIndexes(ctx, db, &walletstore.WalletDao{}, "redeemed")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping campaign_wallets table...")
		return mghelper.DropTables(ctx, db, &walletstore.WalletDao{})
	})
}
