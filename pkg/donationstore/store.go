package donationstore

import (
	"context"
	"errors"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

// ErrStatsNotFound is returned when a stats lookup finds no matching record.
var ErrStatsNotFound = errors.New("campaign stats not found")

// Store defines the interface for donation and aggregate persistence.
type Store interface {
	// InsertDonation records an observed transfer and folds it into the
	// campaign aggregates in one transaction. It reports false when the
	// transaction signature was already recorded, in which case nothing
	// changes.
	InsertDonation(ctx context.Context, donation *campaign.Donation) (bool, error)
	ListDonations(ctx context.Context, campaignID string) ([]*campaign.Donation, error)
	GetStats(ctx context.Context, campaignID string) (*campaign.Stats, error)

	// GetCursor returns the newest processed signature for a campaign, or
	// an empty string when ingestion has never run for it.
	GetCursor(ctx context.Context, campaignID string) (string, error)
	AdvanceCursor(ctx context.Context, campaignID, signature string) error
}
