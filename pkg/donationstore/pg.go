package donationstore

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

// NewStore creates a new postgres implementation of the donation store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) InsertDonation(ctx context.Context, donation *campaign.Donation) (bool, error) {
	inserted := false

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := toDonationDao(donation)

		res, err := tx.NewInsert().
			Model(dao).
			On("CONFLICT (tx_signature) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert donation: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}
		if affected == 0 {
			// Already recorded. Aggregates must not move.
			return nil
		}
		inserted = true

		now := time.Now().UTC()
		stats := &StatsDao{
			CampaignID:   donation.CampaignID,
			AmountRaised: donation.Amount,
			Supporters:   1,
			UpdatedAt:    &now,
		}
		_, err = tx.NewInsert().
			Model(stats).
			On("CONFLICT (campaign_id) DO UPDATE").
			Set("amount_raised = cs.amount_raised + EXCLUDED.amount_raised").
			Set("supporters = cs.supporters + 1").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update campaign stats: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}

func (s *pgStore) ListDonations(ctx context.Context, campaignID string) ([]*campaign.Donation, error) {
	var daos []DonationDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	donations := make([]*campaign.Donation, len(daos))
	for i := range daos {
		donations[i] = toDonation(&daos[i])
	}
	return donations, nil
}

func (s *pgStore) GetStats(ctx context.Context, campaignID string) (*campaign.Stats, error) {
	dao := new(StatsDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("campaign_id = ?", campaignID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}

	return toStats(dao), nil
}

func (s *pgStore) GetCursor(ctx context.Context, campaignID string) (string, error) {
	dao := new(SyncCursorDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("campaign_id = ?", campaignID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get sync cursor: %w", err)
	}

	return dao.LastSignature, nil
}

func (s *pgStore) AdvanceCursor(ctx context.Context, campaignID, signature string) error {
	dao := &SyncCursorDao{
		CampaignID:    campaignID,
		LastSignature: signature,
		UpdatedAt:     time.Now().UTC(),
	}

	_, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (campaign_id) DO UPDATE").
		Set("last_signature = EXCLUDED.last_signature").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to advance sync cursor: %w", err)
	}
	return nil
}
