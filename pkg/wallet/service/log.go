package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

const serviceName = "WalletService"

const signatureDisplaySize = 16

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the wallet Service.
// It logs method entry/exit, duration, errors, and sanitized request data.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Create wraps the service method with logging
func (ls *logService) Create(
	ctx context.Context,
	req *campaign.CreateWalletRequest,
) (resp *campaign.CreateWalletResponse, err error) {
	start := time.Now()

	ls.logger.Info("Create started",
		zap.String("service", serviceName),
		zap.String("method", "Create"),
		zap.String("campaign_id", req.CampaignID),
		zap.String("creator_wallet", req.CreatorWallet),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Create failed",
				zap.String("service", serviceName),
				zap.String("method", "Create"),
				zap.String("campaign_id", req.CampaignID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Create completed",
				zap.String("service", serviceName),
				zap.String("method", "Create"),
				zap.String("campaign_id", req.CampaignID),
				zap.String("campaign_wallet", resp.CampaignWallet),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Create(ctx, req)
}

// Status wraps the service method with logging
func (ls *logService) Status(
	ctx context.Context,
	campaignID string,
) (resp *campaign.StatusResponse, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Warn("Status failed",
				zap.String("service", serviceName),
				zap.String("method", "Status"),
				zap.String("campaign_id", campaignID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Debug("Status completed",
				zap.String("service", serviceName),
				zap.String("method", "Status"),
				zap.String("campaign_id", campaignID),
				zap.Int64("live_balance", resp.LiveBalance),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Status(ctx, campaignID)
}

// Redeem wraps the service method with logging
func (ls *logService) Redeem(
	ctx context.Context,
	campaignID string,
	req *campaign.RedeemRequest,
) (resp *campaign.RedeemResponse, err error) {
	start := time.Now()

	ls.logger.Info("Redeem started",
		zap.String("service", serviceName),
		zap.String("method", "Redeem"),
		zap.String("campaign_id", campaignID),
		zap.String("wallet_address", req.WalletAddress),
		zap.String("signature", redactSignature(req.Signature)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Redeem failed",
				zap.String("service", serviceName),
				zap.String("method", "Redeem"),
				zap.String("campaign_id", campaignID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Redeem completed",
				zap.String("service", serviceName),
				zap.String("method", "Redeem"),
				zap.String("campaign_id", campaignID),
				zap.Int64("payout", resp.Payout),
				zap.String("tx_signature", resp.TxSignature),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Redeem(ctx, campaignID, req)
}

// redactSignature redacts signature data to show only metadata
// Signatures prove wallet ownership and should not be logged in full
func redactSignature(sig string) string {
	if sig == "" {
		return "<empty>"
	}
	sigLen := len(sig)
	if sigLen > signatureDisplaySize {
		return fmt.Sprintf("%s...%s (%d bytes)", sig[:8], sig[sigLen-4:], sigLen)
	}
	return fmt.Sprintf("<%d bytes>", sigLen)
}
