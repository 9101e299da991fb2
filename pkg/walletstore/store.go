package walletstore

import (
	"context"
	"errors"
	"time"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

// ErrWalletNotFound is returned when a wallet lookup finds no matching record.
var ErrWalletNotFound = errors.New("campaign wallet not found")

// ErrAlreadyRedeemed is returned when a conditional redemption marker finds
// the wallet already redeemed.
var ErrAlreadyRedeemed = errors.New("campaign already redeemed")

// PollUpdate carries the balance accounting written after one poll
// observation of a wallet.
type PollUpdate struct {
	CampaignID    string
	LastBalance   int64
	ReceivedDelta int64
	FeeDelta      int64
	CheckedAt     time.Time
}

// PollStore defines the wallet operations used by the balance poller.
type PollStore interface {
	ListUnredeemed(ctx context.Context) ([]*campaign.Wallet, error)
	ApplyPollUpdate(ctx context.Context, update PollUpdate) error
}

// KeyDecryptor decrypts an encrypted secret key string into raw bytes.
type KeyDecryptor func(encryptedKey string) ([]byte, error)

// KeyStore defines campaign signing key retrieval.
type KeyStore interface {
	GetWalletKey(ctx context.Context, campaignID string, decryptor KeyDecryptor) ([]byte, error)
}

// Store defines the interface for campaign wallet persistence.
type Store interface {
	PollStore
	KeyStore
	// CreateWallet inserts a wallet unless one already exists for the
	// campaign. It returns the stored wallet either way, along with
	// whether this call created it.
	CreateWallet(ctx context.Context, wallet *campaign.Wallet) (*campaign.Wallet, bool, error)
	GetWallet(ctx context.Context, campaignID string) (*campaign.Wallet, error)
	// MarkRedeemed flips the one-shot redemption flag. It succeeds for
	// exactly one caller per campaign and returns ErrAlreadyRedeemed for
	// every later attempt.
	MarkRedeemed(ctx context.Context, campaignID string, payout int64, txSignature string, redeemedAt time.Time) error
}
