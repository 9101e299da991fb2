package walletstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the campaign wallet store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateWallet(ctx context.Context, wallet *campaign.Wallet) (*campaign.Wallet, bool, error) {
	dao := toWalletDao(wallet)

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (campaign_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create campaign wallet: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read insert result: %w", err)
	}

	if inserted == 0 {
		// Lost the race or the campaign was provisioned earlier. Return
		// the wallet that actually holds the funds.
		existing, err := s.GetWallet(ctx, wallet.CampaignID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	return toWallet(dao), true, nil
}

func (s *pgStore) GetWallet(ctx context.Context, campaignID string) (*campaign.Wallet, error) {
	dao := new(WalletDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("campaign_id = ?", campaignID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get campaign wallet: %w", err)
	}

	return toWallet(dao), nil
}

func (s *pgStore) ListUnredeemed(ctx context.Context) ([]*campaign.Wallet, error) {
	var daos []WalletDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("redeemed = FALSE").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unredeemed wallets: %w", err)
	}

	wallets := make([]*campaign.Wallet, len(daos))
	for i := range daos {
		wallets[i] = toWallet(&daos[i])
	}
	return wallets, nil
}

func (s *pgStore) ApplyPollUpdate(ctx context.Context, update PollUpdate) error {
	_, err := s.db.NewUpdate().
		Model((*WalletDao)(nil)).
		Set("last_balance = ?", update.LastBalance).
		Set("total_received = total_received + ?", update.ReceivedDelta).
		Set("fees_collected = fees_collected + ?", update.FeeDelta).
		Set("last_checked = ?", update.CheckedAt).
		Where("campaign_id = ?", update.CampaignID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply poll update: %w", err)
	}
	return nil
}

func (s *pgStore) MarkRedeemed(ctx context.Context, campaignID string, payout int64, txSignature string, redeemedAt time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*WalletDao)(nil)).
		Set("redeemed = TRUE").
		Set("total_redeemed = ?", payout).
		Set("redeem_signature = ?", txSignature).
		Set("redeemed_at = ?", redeemedAt).
		Where("campaign_id = ?", campaignID).
		Where("redeemed = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark campaign redeemed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read redemption result: %w", err)
	}
	if affected == 0 {
		exists, err := s.db.NewSelect().
			Model((*WalletDao)(nil)).
			Where("campaign_id = ?", campaignID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check campaign wallet: %w", err)
		}
		if !exists {
			return ErrWalletNotFound
		}
		return ErrAlreadyRedeemed
	}

	return nil
}

func (s *pgStore) GetWalletKey(ctx context.Context, campaignID string, decryptor KeyDecryptor) ([]byte, error) {
	dao := new(WalletDao)
	err := s.db.NewSelect().
		Model(dao).
		Column("secret_key_encrypted").
		Where("campaign_id = ?", campaignID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet key: %w", err)
	}

	decrypted, err := decryptor(dao.SecretKeyEncrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet key: %w", err)
	}

	return decrypted, nil
}
