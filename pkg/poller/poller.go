// Package poller runs the background balance loop that skims the platform
// fee from newly received campaign funds.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/creasty/defaults"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/internal/metrics"
	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/keys"
	"github.com/solfund/custody-middleware/pkg/walletstore"
)

// Store provides wallet listing, accounting updates and signing key access
// for the poll loop.
type Store interface {
	ListUnredeemed(ctx context.Context) ([]*campaign.Wallet, error)
	ApplyPollUpdate(ctx context.Context, update walletstore.PollUpdate) error
	GetWalletKey(ctx context.Context, campaignID string, decryptor walletstore.KeyDecryptor) ([]byte, error)
}

// Ledger is the on-chain surface the poller needs.
type Ledger interface {
	GetBalances(ctx context.Context, accounts []solana.PublicKey) ([]*uint64, error)
	Transfer(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, lamports uint64) (solana.Signature, error)
}

// Config holds the fee-skimming parameters.
type Config struct {
	// FeeRate is the platform fee as a fraction of newly received funds.
	FeeRate float64 `default:"0.01"`
	// MinFeeThreshold is the smallest fee, in lamports, worth a transfer.
	// Below it the observation is recorded without moving funds.
	MinFeeThreshold int64 `default:"1000000"`
	// Interval between poll cycles.
	Interval time.Duration `default:"30s"`
	// BatchSize is the number of accounts per multi-account balance fetch.
	BatchSize int `default:"10"`
	// CycleTimeout bounds one full poll cycle.
	CycleTimeout time.Duration `default:"2m"`
}

// Poller periodically observes campaign wallet balances and transfers the
// platform fee out of each positive balance delta.
type Poller struct {
	store          Store
	ledger         Ledger
	keyCipher      keys.KeyCipher
	platformWallet solana.PublicKey
	cfg            Config
	logger         *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Poller. Zero config fields take their defaults.
func New(
	store Store,
	ledger Ledger,
	keyCipher keys.KeyCipher,
	platformWallet solana.PublicKey,
	cfg Config,
	logger *zap.Logger,
) (*Poller, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply poller defaults: %w", err)
	}
	if platformWallet.IsZero() {
		return nil, fmt.Errorf("platform wallet is required")
	}
	if cfg.FeeRate < 0 || cfg.FeeRate >= 1 {
		return nil, fmt.Errorf("fee rate must be in [0, 1)")
	}

	return &Poller{
		store:          store,
		ledger:         ledger,
		keyCipher:      keyCipher,
		platformWallet: platformWallet,
		cfg:            cfg,
		logger:         logger,
		stopCh:         make(chan struct{}),
	}, nil
}

// Start launches the background poll loop.
func (p *Poller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.cfg.Interval)
		defer ticker.Stop()

		p.logger.Info("Started balance poller",
			zap.Duration("interval", p.cfg.Interval),
			zap.Int("batch_size", p.cfg.BatchSize))

		// Run a cycle immediately so startup does not wait a full interval.
		runCycle := func() {
			ctx, cancel := context.WithTimeout(context.Background(), p.cfg.CycleTimeout)
			defer cancel()
			if err := p.PollOnce(ctx); err != nil {
				p.logger.Error("Poll cycle failed", zap.Error(err))
			}
		}
		runCycle()

		for {
			select {
			case <-ticker.C:
				runCycle()
			case <-p.stopCh:
				p.logger.Info("Stopping balance poller")
				return
			}
		}
	}()
}

// Stop signals the loop to finish its current cycle and waits for it.
// Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

// PollOnce runs one full poll cycle: list unredeemed wallets, fetch each
// batch's balances in one call, process accounts within a batch
// concurrently. Per-account and per-batch failures are logged and never
// abort the cycle.
func (p *Poller) PollOnce(ctx context.Context) error {
	start := time.Now()

	wallets, err := p.store.ListUnredeemed(ctx)
	if err != nil {
		return fmt.Errorf("failed to list wallets: %w", err)
	}

	for begin := 0; begin < len(wallets); begin += p.cfg.BatchSize {
		end := begin + p.cfg.BatchSize
		if end > len(wallets) {
			end = len(wallets)
		}
		p.pollBatch(ctx, wallets[begin:end])

		select {
		case <-p.stopCh:
			p.logger.Info("Poll cycle interrupted by stop signal")
			return nil
		default:
		}
	}

	metrics.PollCyclesTotal.Inc()
	metrics.PollCycleDuration.Observe(time.Since(start).Seconds())
	metrics.WalletsPolled.Observe(float64(len(wallets)))

	p.logger.Debug("Poll cycle completed",
		zap.Int("wallets", len(wallets)),
		zap.Duration("duration", time.Since(start)))

	return nil
}

func (p *Poller) pollBatch(ctx context.Context, batch []*campaign.Wallet) {
	accounts := make([]solana.PublicKey, 0, len(batch))
	valid := make([]*campaign.Wallet, 0, len(batch))
	for _, w := range batch {
		account, err := solana.PublicKeyFromBase58(w.PublicKey)
		if err != nil {
			p.logger.Warn("Skipping wallet with invalid public key",
				zap.String("campaign_id", w.CampaignID),
				zap.Error(err))
			continue
		}
		accounts = append(accounts, account)
		valid = append(valid, w)
	}
	if len(accounts) == 0 {
		return
	}

	balances, err := p.ledger.GetBalances(ctx, accounts)
	if err != nil {
		p.logger.Warn("Failed to fetch balance batch", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for i, w := range valid {
		if balances[i] == nil {
			// Account not funded yet, nothing to observe.
			continue
		}
		wg.Add(1)
		go func(w *campaign.Wallet, live uint64) {
			defer wg.Done()
			p.processWallet(ctx, w, live)
		}(w, *balances[i])
	}
	wg.Wait()
}

// processWallet folds one balance observation into the wallet accounting.
// A positive delta above the fee threshold triggers a fee transfer to the
// platform wallet; on transfer failure the delta is still recorded and the
// uncollected fee rides along until more funds arrive.
func (p *Poller) processWallet(ctx context.Context, w *campaign.Wallet, live uint64) {
	delta := int64(live) - w.LastBalance
	if delta < 0 {
		p.logger.Warn("Campaign balance decreased outside of redemption",
			zap.String("campaign_id", w.CampaignID),
			zap.Int64("last_balance", w.LastBalance),
			zap.Uint64("live_balance", live))
		return
	}
	if delta == 0 {
		return
	}

	fee := p.computeFee(delta)
	checked := time.Now().UTC()

	if fee < p.cfg.MinFeeThreshold {
		p.applyUpdate(walletstore.PollUpdate{
			CampaignID:    w.CampaignID,
			LastBalance:   int64(live),
			ReceivedDelta: delta,
			FeeDelta:      0,
			CheckedAt:     checked,
		})
		return
	}

	sig, err := p.transferFee(ctx, w, uint64(fee))
	if err != nil {
		metrics.FeeTransfersTotal.WithLabelValues("failed").Inc()
		p.logger.Warn("Fee transfer failed, will retry with next deposit",
			zap.String("campaign_id", w.CampaignID),
			zap.Int64("fee", fee),
			zap.Error(err))
		p.applyUpdate(walletstore.PollUpdate{
			CampaignID:    w.CampaignID,
			LastBalance:   int64(live),
			ReceivedDelta: delta,
			FeeDelta:      0,
			CheckedAt:     checked,
		})
		return
	}

	metrics.FeeTransfersTotal.WithLabelValues("success").Inc()
	metrics.FeesCollectedLamports.Add(float64(fee))
	p.logger.Info("Platform fee collected",
		zap.String("campaign_id", w.CampaignID),
		zap.Int64("fee", fee),
		zap.Int64("delta", delta),
		zap.String("tx_signature", sig.String()))

	p.applyUpdate(walletstore.PollUpdate{
		CampaignID:    w.CampaignID,
		LastBalance:   int64(live) - fee,
		ReceivedDelta: delta,
		FeeDelta:      fee,
		CheckedAt:     checked,
	})
}

// computeFee returns floor(delta * feeRate) in lamports.
func (p *Poller) computeFee(delta int64) int64 {
	return decimal.NewFromInt(delta).
		Mul(decimal.NewFromFloat(p.cfg.FeeRate)).
		Floor().
		IntPart()
}

func (p *Poller) transferFee(ctx context.Context, w *campaign.Wallet, fee uint64) (solana.Signature, error) {
	secret, err := p.store.GetWalletKey(ctx, w.CampaignID, walletstore.KeyDecryptor(p.keyCipher.Decrypt))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to load signing key: %w", err)
	}
	keyPair, err := keys.KeyPairFromPrivateKey(secret)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("stored signing key is invalid: %w", err)
	}

	return p.ledger.Transfer(ctx, keyPair.PrivateKey, p.platformWallet, fee)
}

func (p *Poller) applyUpdate(update walletstore.PollUpdate) {
	// Accounting writes use a fresh context so a cycle timeout mid-batch
	// cannot drop an observation that already happened on chain.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.store.ApplyPollUpdate(ctx, update); err != nil {
		p.logger.Warn("Failed to record poll observation",
			zap.String("campaign_id", update.CampaignID),
			zap.Error(err))
	}
}
