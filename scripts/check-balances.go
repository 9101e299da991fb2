//go:build ignore

// check-balances.go - Print live lamport balances for campaign wallets
//
// Usage:
//   go run scripts/check-balances.go -config config.yaml                       # all unredeemed wallets
//   go run scripts/check-balances.go -config config.yaml -campaign my-campaign # one campaign
//
// Reads wallet rows from the custody database and fetches balances over the
// configured Solana RPC endpoint.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/pkg/config"
	"github.com/solfund/custody-middleware/pkg/ledger"
	"github.com/solfund/custody-middleware/pkg/pgutil"
	"github.com/solfund/custody-middleware/pkg/walletstore"

	"github.com/gagliardetto/solana-go"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	campaignID := flag.String("campaign", "", "Limit output to one campaign")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("failed to load config: %v", err)
	}

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	chain, err := ledger.NewClient(&cfg.Solana, zap.NewNop())
	if err != nil {
		fatalf("failed to create solana client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := walletstore.NewStore(db)

	wallets, err := store.ListUnredeemed(ctx)
	if err != nil {
		fatalf("failed to list wallets: %v", err)
	}

	for _, w := range wallets {
		if *campaignID != "" && w.CampaignID != *campaignID {
			continue
		}
		account, err := solana.PublicKeyFromBase58(w.PublicKey)
		if err != nil {
			fmt.Printf("%-30s %s  INVALID KEY\n", w.CampaignID, w.PublicKey)
			continue
		}
		live, err := chain.GetBalance(ctx, account)
		if err != nil {
			fmt.Printf("%-30s %s  ERROR: %v\n", w.CampaignID, w.PublicKey, err)
			continue
		}
		fmt.Printf("%-30s %s  live=%d recorded=%d received=%d fees=%d\n",
			w.CampaignID, w.PublicKey, live, w.LastBalance, w.TotalReceived, w.FeesCollected)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
