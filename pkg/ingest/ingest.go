// Package ingest mirrors on-chain donation history into the database. Each
// sync cycle walks the transaction history of every unredeemed campaign
// wallet from its cursor forward and records the inbound transfers it finds.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/internal/metrics"
	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/config"
	"github.com/solfund/custody-middleware/pkg/ledger"
)

// WalletLister provides the set of campaign wallets to sync.
type WalletLister interface {
	ListUnredeemed(ctx context.Context) ([]*campaign.Wallet, error)
}

// DonationStore persists observed transfers and the per-campaign cursor.
type DonationStore interface {
	InsertDonation(ctx context.Context, donation *campaign.Donation) (bool, error)
	GetCursor(ctx context.Context, campaignID string) (string, error)
	AdvanceCursor(ctx context.Context, campaignID, signature string) error
}

// Ledger reads transaction history from the chain.
type Ledger interface {
	InboundTransfers(ctx context.Context, account solana.PublicKey, until string, limit int) ([]ledger.Transfer, string, error)
}

// Ingester runs donation sync cycles, either on demand or on a background
// interval.
type Ingester struct {
	wallets   WalletLister
	donations DonationStore
	ledger    Ledger
	cfg       *config.SyncConfig
	logger    *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Ingester.
func New(
	wallets WalletLister,
	donations DonationStore,
	ledgerClient Ledger,
	cfg *config.SyncConfig,
	logger *zap.Logger,
) *Ingester {
	return &Ingester{
		wallets:   wallets,
		donations: donations,
		ledger:    ledgerClient,
		cfg:       cfg,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the background sync loop. It is a no-op when background
// sync is disabled; RunSyncCycle remains available for on-demand syncs.
func (i *Ingester) Start() {
	if !i.cfg.Enabled {
		i.logger.Info("Background donation sync disabled")
		return
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()

		i.logger.Info("Donation sync loop started",
			zap.Duration("interval", i.cfg.Interval))

		ticker := time.NewTicker(i.cfg.Interval)
		defer ticker.Stop()

		// First cycle runs right away rather than one interval in.
		runCycle := func() {
			ctx, cancel := context.WithTimeout(context.Background(), i.cfg.Interval)
			defer cancel()
			if _, err := i.RunSyncCycle(ctx); err != nil {
				i.logger.Error("Donation sync cycle failed", zap.Error(err))
			}
		}
		runCycle()

		for {
			select {
			case <-ticker.C:
				runCycle()
			case <-i.stopCh:
				i.logger.Info("Donation sync loop stopped")
				return
			}
		}
	}()
}

// Stop signals the background loop to exit and waits for it. Safe to call
// more than once, so a deferred Stop can back up an explicit one.
func (i *Ingester) Stop() {
	i.stopOnce.Do(func() { close(i.stopCh) })
	i.wg.Wait()
}

// RunSyncCycle syncs every unredeemed campaign wallet once and returns the
// number of new donation records created. A failure on one wallet is logged
// and does not stop the rest of the cycle.
func (i *Ingester) RunSyncCycle(ctx context.Context) (int, error) {
	wallets, err := i.wallets.ListUnredeemed(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list campaign wallets: %w", err)
	}

	ingested := 0
	for _, w := range wallets {
		count, err := i.syncWallet(ctx, w)
		if err != nil {
			i.logger.Warn("Failed to sync campaign wallet",
				zap.String("campaign_id", w.CampaignID),
				zap.Error(err))
			continue
		}
		ingested += count
	}

	if ingested > 0 {
		i.logger.Info("Donation sync cycle complete",
			zap.Int("wallets", len(wallets)),
			zap.Int("ingested", ingested))
	}
	return ingested, nil
}

func (i *Ingester) syncWallet(ctx context.Context, w *campaign.Wallet) (int, error) {
	account, err := solana.PublicKeyFromBase58(w.PublicKey)
	if err != nil {
		return 0, fmt.Errorf("invalid campaign public key %q: %w", w.PublicKey, err)
	}

	cursor, err := i.donations.GetCursor(ctx, w.CampaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to load sync cursor: %w", err)
	}

	transfers, newest, err := i.ledger.InboundTransfers(ctx, account, cursor, i.cfg.SignatureLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transaction history: %w", err)
	}
	if newest == "" {
		return 0, nil
	}

	ingested := 0
	for _, transfer := range transfers {
		inserted, err := i.donations.InsertDonation(ctx, &campaign.Donation{
			CampaignID:  w.CampaignID,
			DonorWallet: transfer.Donor,
			Amount:      int64(transfer.Amount),
			TxSignature: transfer.Signature,
			BlockTime:   transfer.BlockTime,
		})
		if err != nil {
			// The cursor stays put so the failed transfer is retried
			// next cycle; duplicates are harmless.
			return ingested, fmt.Errorf("failed to record donation %s: %w", transfer.Signature, err)
		}
		if inserted {
			ingested++
			metrics.DonationsIngestedTotal.Inc()
		}
	}

	if err := i.donations.AdvanceCursor(ctx, w.CampaignID, newest); err != nil {
		return ingested, fmt.Errorf("failed to advance sync cursor: %w", err)
	}
	return ingested, nil
}
