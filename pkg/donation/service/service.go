// Package service exposes read access to recorded donation history and
// campaign aggregates.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/solfund/custody-middleware/pkg/app/errors"
	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/donationstore"
)

// DonationEntry is one donation in a history listing.
type DonationEntry struct {
	DonorWallet string     `json:"donor_wallet"`
	Amount      int64      `json:"amount"`
	TxSignature string     `json:"tx_signature"`
	BlockTime   *time.Time `json:"block_time,omitempty"`
}

// ListResponse is the donation history for a campaign.
type ListResponse struct {
	CampaignID string          `json:"campaign_id"`
	Donations  []DonationEntry `json:"donations"`
}

// StatsResponse is the displayed aggregate for a campaign.
type StatsResponse struct {
	CampaignID   string     `json:"campaign_id"`
	AmountRaised int64      `json:"amount_raised"`
	Supporters   int64      `json:"supporters"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Service defines read operations over donation records.
type Service interface {
	List(ctx context.Context, campaignID string) (*ListResponse, error)
	Stats(ctx context.Context, campaignID string) (*StatsResponse, error)
}

type donationService struct {
	store  donationstore.Store
	logger *zap.Logger
}

// NewService creates a new donation read service
func NewService(store donationstore.Store, logger *zap.Logger) Service {
	return &donationService{store: store, logger: logger}
}

func (s *donationService) List(ctx context.Context, campaignID string) (*ListResponse, error) {
	donations, err := s.store.ListDonations(ctx, campaignID)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("failed to list donations: %w", err))
	}

	entries := make([]DonationEntry, 0, len(donations))
	for _, d := range donations {
		entries = append(entries, toEntry(d))
	}
	return &ListResponse{CampaignID: campaignID, Donations: entries}, nil
}

func (s *donationService) Stats(ctx context.Context, campaignID string) (*StatsResponse, error) {
	stats, err := s.store.GetStats(ctx, campaignID)
	if err != nil {
		if errors.Is(err, donationstore.ErrStatsNotFound) {
			// A campaign with no recorded donations reads as zero, not 404.
			return &StatsResponse{CampaignID: campaignID}, nil
		}
		return nil, apperrors.GeneralError(fmt.Errorf("failed to load campaign stats: %w", err))
	}

	return &StatsResponse{
		CampaignID:   stats.CampaignID,
		AmountRaised: stats.AmountRaised,
		Supporters:   stats.Supporters,
		UpdatedAt:    stats.UpdatedAt,
	}, nil
}

func toEntry(d *campaign.Donation) DonationEntry {
	return DonationEntry{
		DonorWallet: d.DonorWallet,
		Amount:      d.Amount,
		TxSignature: d.TxSignature,
		BlockTime:   d.BlockTime,
	}
}
