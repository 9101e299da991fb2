package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/solfund/custody-middleware/pkg/app/errors"
	"github.com/solfund/custody-middleware/pkg/auth"
	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/config"
	"github.com/solfund/custody-middleware/pkg/keys"
	"github.com/solfund/custody-middleware/pkg/wallet/service/mocks"
	"github.com/solfund/custody-middleware/pkg/walletstore"
)

func testConfigs() (*config.WalletConfig, *config.FeeConfig) {
	return &config.WalletConfig{},
		&config.FeeConfig{
			Rate:              0.01,
			MinFeeThreshold:   1_000_000,
			NetworkFeeReserve: 5000,
		}
}

func testCipher(t *testing.T) keys.KeyCipher {
	t.Helper()

	masterKey := make([]byte, 32)
	if _, err := rand.Read(masterKey); err != nil {
		t.Fatalf("failed to generate master key: %v", err)
	}
	return keys.NewMasterKeyCipher(masterKey)
}

// signRedeemChallenge builds a valid Redeem Funds challenge signed by the
// given key.
func signRedeemChallenge(t *testing.T, signer solana.PrivateKey, campaignID string) *campaign.RedeemRequest {
	t.Helper()

	timestamp := time.Now().UnixMilli()
	walletAddress := signer.PublicKey().String()

	message, err := auth.FormatMessage(auth.ActionRedeemFunds, campaignID, timestamp, walletAddress)
	if err != nil {
		t.Fatalf("FormatMessage() failed: %v", err)
	}

	sig, err := signer.Sign([]byte(message))
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}

	return &campaign.RedeemRequest{
		WalletAddress: walletAddress,
		Signature:     sig.String(),
		Message:       message,
		Timestamp:     timestamp,
	}
}

// signedBy matches a context carrying the given wallet as the verified
// challenge signer.
func signedBy(wallet string) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		got, ok := auth.VerifiedWalletFromContext(ctx)
		return ok && got == wallet
	})
}

func TestWalletService_Create_Success(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().
		CreateWallet(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, w *campaign.Wallet) (*campaign.Wallet, bool, error) {
			if w.CampaignID != "camp-1" {
				t.Fatalf("unexpected campaign id: %s", w.CampaignID)
			}
			if w.PublicKey == "" || w.SecretKeyEncrypted == "" {
				t.Fatalf("wallet is missing generated key material")
			}
			return w, true, nil
		}).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	resp, err := svc.Create(ctx, &campaign.CreateWalletRequest{
		CampaignID:    "camp-1",
		CreatorWallet: solana.NewWallet().PublicKey().String(),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if resp.CampaignWallet == "" {
		t.Fatal("expected a campaign wallet address")
	}
	if resp.FeeRate != 0.01 {
		t.Fatalf("fee rate: got %v want 0.01", resp.FeeRate)
	}
}

func TestWalletService_Create_IdempotentReturnsExisting(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	existing := &campaign.Wallet{
		CampaignID: "camp-1",
		PublicKey:  "ExistingWalletPubkey11111111111111111111111",
	}

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().CreateWallet(ctx, mock.Anything).Return(existing, false, nil).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	resp, err := svc.Create(ctx, &campaign.CreateWalletRequest{
		CampaignID:    "camp-1",
		CreatorWallet: solana.NewWallet().PublicKey().String(),
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if resp.CampaignWallet != existing.PublicKey {
		t.Fatalf("expected the stored wallet, got %s", resp.CampaignWallet)
	}
}

func TestWalletService_Create_VanityExhaustionFails(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()
	// "0" is not in the base58 alphabet, so no key can ever match.
	walletCfg.VanityEnabled = true
	walletCfg.VanitySuffix = "0000"
	walletCfg.VanityMaxAttempts = 3

	svc := NewService(mocks.NewStore(t), mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	_, err := svc.Create(ctx, &campaign.CreateWalletRequest{
		CampaignID:    "camp-1",
		CreatorWallet: solana.NewWallet().PublicKey().String(),
	})
	if err == nil {
		t.Fatal("expected vanity exhaustion to fail provisioning")
	}
}

func TestWalletService_Status_NotFound(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-missing").Return(nil, walletstore.ErrWalletNotFound).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	_, err := svc.Status(ctx, "camp-missing")
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestWalletService_Status_LiveBalance(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	account := solana.NewWallet().PublicKey()
	wallet := &campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		TotalReceived: 2_000_000,
		FeesCollected: 20_000,
		LastBalance:   1_500_000,
	}

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(wallet, nil).Once()

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(ctx, account).Return(uint64(1_750_000), nil).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	resp, err := svc.Status(ctx, "camp-1")
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	// The cached counter never substitutes for the live balance.
	if resp.LiveBalance != 1_750_000 {
		t.Fatalf("live balance: got %d want %d", resp.LiveBalance, 1_750_000)
	}
	if resp.TotalReceived != 2_000_000 {
		t.Fatalf("total received: got %d", resp.TotalReceived)
	}
}

func TestWalletService_Status_LedgerDown(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	account := solana.NewWallet().PublicKey()
	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID: "camp-1",
		PublicKey:  account.String(),
	}, nil).Once()

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(ctx, account).Return(uint64(0), errors.New("rpc timeout")).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	_, err := svc.Status(ctx, "camp-1")
	if !apperrors.Is(err, apperrors.CategoryDependencyFailure) {
		t.Fatalf("expected CategoryDependencyFailure, got %v", err)
	}
}

func TestWalletService_Redeem_NotFound(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-missing").Return(nil, walletstore.ErrWalletNotFound).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	_, err := svc.Redeem(ctx, "camp-missing", &campaign.RedeemRequest{})
	if !apperrors.Is(err, apperrors.CategoryResourceNotFound) {
		t.Fatalf("expected CategoryResourceNotFound, got %v", err)
	}
}

func TestWalletService_Redeem_AlreadyRedeemed(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID: "camp-1",
		Redeemed:   true,
	}, nil).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	_, err := svc.Redeem(ctx, "camp-1", &campaign.RedeemRequest{})
	if !errors.Is(err, ErrCampaignRedeemed) {
		t.Fatalf("expected ErrCampaignRedeemed, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryDataConflict) {
		t.Fatalf("expected CategoryDataConflict, got %v", err)
	}
}

func TestWalletService_Redeem_InvalidChallenge(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     solana.NewWallet().PublicKey().String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	// Challenge signed for a different campaign must not authorize camp-1.
	req := signRedeemChallenge(t, creator, "camp-other")
	_, err = svc.Redeem(ctx, "camp-1", req)
	if !apperrors.Is(err, apperrors.CategoryUnauthorized) {
		t.Fatalf("expected CategoryUnauthorized, got %v", err)
	}
}

func TestWalletService_Redeem_WrongSigner(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	stranger, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     solana.NewWallet().PublicKey().String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()

	svc := NewService(storeMock, mocks.NewLedger(t), testCipher(t), walletCfg, feeCfg, zap.NewNop())

	// A valid challenge signed by someone who is not the creator.
	req := signRedeemChallenge(t, stranger, "camp-1")
	_, err = svc.Redeem(ctx, "camp-1", req)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryForbidden) {
		t.Fatalf("expected CategoryForbidden, got %v", err)
	}
}

func TestWalletService_Redeem_AdminSignerAllowed(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	admin, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	walletCfg.AdminWallet = admin.PublicKey().String()

	campaignKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := campaignKey.PublicKey()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()
	// Verification attaches the admin signer to the context the store and
	// ledger calls receive.
	adminCtx := signedBy(admin.PublicKey().String())
	storeMock.EXPECT().GetWalletKey(adminCtx, "camp-1", mock.Anything).Return([]byte(campaignKey), nil).Once()
	storeMock.EXPECT().MarkRedeemed(adminCtx, "camp-1", int64(995_000), mock.Anything, mock.Anything).Return(nil).Once()

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(adminCtx, account).Return(uint64(1_000_000), nil).Once()
	ledgerMock.EXPECT().Transfer(adminCtx, mock.Anything, creator.PublicKey(), uint64(995_000)).Return(solana.Signature{}, nil).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	req := signRedeemChallenge(t, admin, "camp-1")
	resp, err := svc.Redeem(ctx, "camp-1", req)
	if err != nil {
		t.Fatalf("Redeem() failed: %v", err)
	}
	if resp.Payout != 995_000 {
		t.Fatalf("payout: got %d want %d", resp.Payout, 995_000)
	}
}

func TestWalletService_Redeem_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := solana.NewWallet().PublicKey()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()

	ledgerMock := mocks.NewLedger(t)
	// Exactly the reserve leaves nothing to pay out.
	ledgerMock.EXPECT().GetBalance(signedBy(creator.PublicKey().String()), account).
		Return(uint64(feeCfg.NetworkFeeReserve), nil).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	req := signRedeemChallenge(t, creator, "camp-1")
	_, err = svc.Redeem(ctx, "camp-1", req)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryInsufficientFunds) {
		t.Fatalf("expected CategoryInsufficientFunds, got %v", err)
	}
}

func TestWalletService_Redeem_TransferFailureLeavesRowUntouched(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	campaignKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := campaignKey.PublicKey()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()
	creatorCtx := signedBy(creator.PublicKey().String())
	storeMock.EXPECT().GetWalletKey(creatorCtx, "camp-1", mock.Anything).Return([]byte(campaignKey), nil).Once()
	// No MarkRedeemed expectation: a failed transfer must not flip the flag.

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(creatorCtx, account).Return(uint64(1_000_000), nil).Once()
	ledgerMock.EXPECT().Transfer(creatorCtx, mock.Anything, creator.PublicKey(), uint64(995_000)).
		Return(solana.Signature{}, errors.New("blockhash expired")).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	req := signRedeemChallenge(t, creator, "camp-1")
	_, err = svc.Redeem(ctx, "camp-1", req)
	if !apperrors.Is(err, apperrors.CategoryDependencyFailure) {
		t.Fatalf("expected CategoryDependencyFailure, got %v", err)
	}
}

func TestWalletService_Redeem_Success(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	campaignKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := campaignKey.PublicKey()

	var txSig solana.Signature
	copy(txSig[:], bytes.Repeat([]byte{7}, 64))

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()
	creatorCtx := signedBy(creator.PublicKey().String())
	storeMock.EXPECT().GetWalletKey(creatorCtx, "camp-1", mock.Anything).Return([]byte(campaignKey), nil).Once()
	storeMock.EXPECT().MarkRedeemed(creatorCtx, "camp-1", int64(1_995_000), txSig.String(), mock.Anything).Return(nil).Once()

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(creatorCtx, account).Return(uint64(2_000_000), nil).Once()
	ledgerMock.EXPECT().Transfer(creatorCtx, solana.PrivateKey(campaignKey), creator.PublicKey(), uint64(1_995_000)).
		Return(txSig, nil).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	req := signRedeemChallenge(t, creator, "camp-1")
	resp, err := svc.Redeem(ctx, "camp-1", req)
	if err != nil {
		t.Fatalf("Redeem() failed: %v", err)
	}
	if resp.Payout != 1_995_000 {
		t.Fatalf("payout: got %d want %d", resp.Payout, 1_995_000)
	}
	if resp.TxSignature != txSig.String() {
		t.Fatalf("tx signature: got %s want %s", resp.TxSignature, txSig.String())
	}
}

func TestWalletService_Redeem_ConcurrentFlipConflict(t *testing.T) {
	ctx := context.Background()
	walletCfg, feeCfg := testConfigs()

	creator, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	campaignKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := campaignKey.PublicKey()

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().GetWallet(ctx, "camp-1").Return(&campaign.Wallet{
		CampaignID:    "camp-1",
		PublicKey:     account.String(),
		CreatorWallet: creator.PublicKey().String(),
	}, nil).Once()
	creatorCtx := signedBy(creator.PublicKey().String())
	storeMock.EXPECT().GetWalletKey(creatorCtx, "camp-1", mock.Anything).Return([]byte(campaignKey), nil).Once()
	storeMock.EXPECT().MarkRedeemed(creatorCtx, "camp-1", int64(995_000), mock.Anything, mock.Anything).
		Return(walletstore.ErrAlreadyRedeemed).Once()

	ledgerMock := mocks.NewLedger(t)
	ledgerMock.EXPECT().GetBalance(creatorCtx, account).Return(uint64(1_000_000), nil).Once()
	ledgerMock.EXPECT().Transfer(creatorCtx, mock.Anything, creator.PublicKey(), uint64(995_000)).
		Return(solana.Signature{}, nil).Once()

	svc := NewService(storeMock, ledgerMock, testCipher(t), walletCfg, feeCfg, zap.NewNop())

	req := signRedeemChallenge(t, creator, "camp-1")
	_, err = svc.Redeem(ctx, "camp-1", req)
	if !errors.Is(err, ErrCampaignRedeemed) {
		t.Fatalf("expected ErrCampaignRedeemed, got %v", err)
	}
	if !apperrors.Is(err, apperrors.CategoryDataConflict) {
		t.Fatalf("expected CategoryDataConflict, got %v", err)
	}
}
