package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/internal/metrics"
	apperrors "github.com/solfund/custody-middleware/pkg/app/errors"
	"github.com/solfund/custody-middleware/pkg/auth"
	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/config"
	"github.com/solfund/custody-middleware/pkg/keys"
	"github.com/solfund/custody-middleware/pkg/walletstore"
)

var (
	ErrCampaignRedeemed    = errors.New("campaign funds already redeemed")
	ErrNotAuthorized       = errors.New("signer is not authorized for this campaign")
	ErrInsufficientBalance = errors.New("balance does not cover the network fee reserve")
)

// Store is the narrow data-access interface for the wallet service.
// Defined here to keep the service decoupled from walletstore implementation details.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	CreateWallet(ctx context.Context, wallet *campaign.Wallet) (*campaign.Wallet, bool, error)
	GetWallet(ctx context.Context, campaignID string) (*campaign.Wallet, error)
	GetWalletKey(ctx context.Context, campaignID string, decryptor walletstore.KeyDecryptor) ([]byte, error)
	MarkRedeemed(ctx context.Context, campaignID string, payout int64, txSignature string, redeemedAt time.Time) error
}

// Ledger is the on-chain surface the wallet service needs.
//
//go:generate mockery --name Ledger --output mocks --outpkg mocks --filename mock_ledger.go --with-expecter
type Ledger interface {
	GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
	Transfer(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, lamports uint64) (solana.Signature, error)
}

// Service defines the interface for campaign wallet business logic
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Create(ctx context.Context, req *campaign.CreateWalletRequest) (*campaign.CreateWalletResponse, error)
	Status(ctx context.Context, campaignID string) (*campaign.StatusResponse, error)
	Redeem(ctx context.Context, campaignID string, req *campaign.RedeemRequest) (*campaign.RedeemResponse, error)
}

type walletService struct {
	store     Store
	ledger    Ledger
	keyCipher keys.KeyCipher
	walletCfg *config.WalletConfig
	feeCfg    *config.FeeConfig
	logger    *zap.Logger
}

// NewService creates a new campaign wallet service
func NewService(
	store Store,
	ledger Ledger,
	keyCipher keys.KeyCipher,
	walletCfg *config.WalletConfig,
	feeCfg *config.FeeConfig,
	logger *zap.Logger,
) Service {
	return &walletService{
		store:     store,
		ledger:    ledger,
		keyCipher: keyCipher,
		walletCfg: walletCfg,
		feeCfg:    feeCfg,
		logger:    logger,
	}
}

// Create provisions a custody wallet for a campaign. Provisioning is
// idempotent: when a wallet already exists for the campaign the stored
// address is returned and the freshly generated key is discarded.
func (s *walletService) Create(ctx context.Context, req *campaign.CreateWalletRequest) (*campaign.CreateWalletResponse, error) {
	keyPair, err := s.generateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("key generation failed: %w", err)
	}

	encryptedKey, err := s.keyCipher.Encrypt(keyPair.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt key: %w", err)
	}

	wallet := campaign.New(req.CampaignID, keyPair.PublicKeyBase58(), encryptedKey, req.CreatorWallet)

	stored, created, err := s.store.CreateWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to save campaign wallet: %w", err)
	}
	if !created {
		s.logger.Info("campaign wallet already provisioned",
			zap.String("campaign_id", req.CampaignID),
			zap.String("campaign_wallet", stored.PublicKey))
	}

	return &campaign.CreateWalletResponse{
		CampaignWallet: stored.PublicKey,
		FeeRate:        s.feeCfg.Rate,
	}, nil
}

func (s *walletService) generateKeyPair() (*keys.CampaignKeyPair, error) {
	if !s.walletCfg.VanityEnabled || s.walletCfg.VanitySuffix == "" {
		return keys.GenerateKeyPair()
	}

	keyPair, attempts, err := keys.GenerateVanityKeyPair(s.walletCfg.VanitySuffix, s.walletCfg.VanityMaxAttempts)
	if err != nil {
		// Exhausting the attempt ceiling fails provisioning outright; a
		// silently non-matching key would be indistinguishable from a
		// vanity one to callers that rely on the suffix.
		s.logger.Warn("vanity key search exhausted",
			zap.String("suffix", s.walletCfg.VanitySuffix),
			zap.Int("attempts", s.walletCfg.VanityMaxAttempts))
		return nil, err
	}

	s.logger.Debug("vanity key generated", zap.Int("attempts", attempts))
	return keyPair, nil
}

// Status returns the custody account state with the live on-chain balance
// fetched at call time. The cached poll counters are never substituted for
// the live balance.
func (s *walletService) Status(ctx context.Context, campaignID string) (*campaign.StatusResponse, error) {
	wallet, err := s.store.GetWallet(ctx, campaignID)
	if err != nil {
		if errors.Is(err, walletstore.ErrWalletNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "campaign wallet not found")
		}
		return nil, fmt.Errorf("failed to load campaign wallet: %w", err)
	}

	account, err := solana.PublicKeyFromBase58(wallet.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("stored public key is invalid: %w", err)
	}

	live, err := s.ledger.GetBalance(ctx, account)
	if err != nil {
		return nil, apperrors.DependencyFailureError(err, "failed to fetch live balance")
	}

	return &campaign.StatusResponse{
		CampaignWallet: wallet.PublicKey,
		LiveBalance:    int64(live),
		TotalReceived:  wallet.TotalReceived,
		FeesCollected:  wallet.FeesCollected,
		Redeemed:       wallet.Redeemed,
		RedeemedAt:     wallet.RedeemedAt,
	}, nil
}

// Redeem pays out the campaign balance to the creator wallet. Preconditions
// are checked in order and each failure maps to a distinct error kind:
// wallet exists, not yet redeemed, challenge verifies and the signer is the
// creator (or the configured admin), and the live balance exceeds the
// network fee reserve.
//
// The payout transfer is confirmed before the redemption flag flips. The
// flip is conditional on redeemed=false, so concurrent redeems settle as
// exactly one success and one conflict.
func (s *walletService) Redeem(ctx context.Context, campaignID string, req *campaign.RedeemRequest) (*campaign.RedeemResponse, error) {
	wallet, err := s.store.GetWallet(ctx, campaignID)
	if err != nil {
		if errors.Is(err, walletstore.ErrWalletNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "campaign wallet not found")
		}
		return nil, fmt.Errorf("failed to load campaign wallet: %w", err)
	}

	if wallet.Redeemed {
		return nil, apperrors.ConflictError(ErrCampaignRedeemed, "campaign funds already redeemed")
	}

	signer, err := auth.VerifyChallenge(auth.ActionRedeemFunds, campaignID, auth.Challenge{
		WalletAddress: req.WalletAddress,
		Signature:     req.Signature,
		Message:       req.Message,
		Timestamp:     req.Timestamp,
	}, time.Now())
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("unauthorized").Inc()
		return nil, apperrors.UnAuthorizedError(err, "invalid redemption challenge")
	}

	// Downstream calls see who authorized the mutation.
	ctx = auth.WithVerifiedWallet(ctx, signer.String())
	ctx = auth.WithChallengeTimestamp(ctx, req.Timestamp)

	if !s.isAuthorizedSigner(signer.String(), wallet.CreatorWallet) {
		metrics.RedemptionsTotal.WithLabelValues("unauthorized").Inc()
		return nil, apperrors.ForbiddenError(ErrNotAuthorized, "signer is not authorized for this campaign")
	}

	account, err := solana.PublicKeyFromBase58(wallet.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("stored public key is invalid: %w", err)
	}

	live, err := s.ledger.GetBalance(ctx, account)
	if err != nil {
		return nil, apperrors.DependencyFailureError(err, "failed to fetch live balance")
	}

	payout := int64(live) - s.feeCfg.NetworkFeeReserve
	if payout <= 0 {
		return nil, apperrors.InsufficientFundsError(ErrInsufficientBalance,
			fmt.Sprintf("balance %d does not cover the %d lamport network fee reserve", live, s.feeCfg.NetworkFeeReserve))
	}

	secret, err := s.store.GetWalletKey(ctx, campaignID, walletstore.KeyDecryptor(s.keyCipher.Decrypt))
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}
	keyPair, err := keys.KeyPairFromPrivateKey(secret)
	if err != nil {
		return nil, fmt.Errorf("stored signing key is invalid: %w", err)
	}

	creator, err := solana.PublicKeyFromBase58(wallet.CreatorWallet)
	if err != nil {
		return nil, fmt.Errorf("stored creator wallet is invalid: %w", err)
	}

	sig, err := s.ledger.Transfer(ctx, keyPair.PrivateKey, creator, uint64(payout))
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("failed").Inc()
		return nil, apperrors.DependencyFailureError(err, "payout transfer failed")
	}

	redeemedAt := time.Now().UTC()
	if err := s.store.MarkRedeemed(ctx, campaignID, payout, sig.String(), redeemedAt); err != nil {
		if errors.Is(err, walletstore.ErrAlreadyRedeemed) {
			// A concurrent redeem confirmed between our precondition check
			// and the flip. The funds moved; surface the conflict loudly.
			s.logger.Error("payout confirmed for an already-redeemed campaign",
				zap.String("campaign_id", campaignID),
				zap.String("tx_signature", sig.String()),
				zap.Int64("payout", payout))
			metrics.RedemptionsTotal.WithLabelValues("conflict").Inc()
			return nil, apperrors.ConflictError(ErrCampaignRedeemed, "campaign funds already redeemed")
		}
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	metrics.RedemptionsTotal.WithLabelValues("success").Inc()

	return &campaign.RedeemResponse{
		Payout:      payout,
		TxSignature: sig.String(),
	}, nil
}

func (s *walletService) isAuthorizedSigner(signer, creator string) bool {
	if signer == creator {
		return true
	}
	return s.walletCfg.AdminWallet != "" && signer == s.walletCfg.AdminWallet
}
