package donationstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

// DonationDao is a data access object that maps directly to the 'donations' table in PostgreSQL.
// The unique transaction signature is the deduplication authority for the
// whole ingestion pipeline.
type DonationDao struct {
	bun.BaseModel `bun:"table:donations,alias:d"`
	ID            int64      `bun:"id,pk,autoincrement"`
	CampaignID    string     `bun:"campaign_id,notnull,type:varchar(64)"`
	DonorWallet   string     `bun:"donor_wallet,notnull,type:varchar(64)"`
	Amount        int64      `bun:"amount,notnull"`
	TxSignature   string     `bun:"tx_signature,unique,notnull,type:varchar(128)"`
	BlockTime     *time.Time `bun:"block_time"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
}

// StatsDao is a data access object that maps directly to the 'campaign_stats' table in PostgreSQL.
type StatsDao struct {
	bun.BaseModel `bun:"table:campaign_stats,alias:cs"`
	CampaignID    string     `bun:"campaign_id,pk,type:varchar(64)"`
	AmountRaised  int64      `bun:"amount_raised,notnull,default:0"`
	Supporters    int64      `bun:"supporters,notnull,default:0"`
	UpdatedAt     *time.Time `bun:"updated_at"`
}

// SyncCursorDao is a data access object that maps directly to the 'sync_cursors' table in PostgreSQL.
// One row per campaign holding the newest processed transaction signature.
type SyncCursorDao struct {
	bun.BaseModel `bun:"table:sync_cursors,alias:sc"`
	CampaignID    string    `bun:"campaign_id,pk,type:varchar(64)"`
	LastSignature string    `bun:"last_signature,notnull,type:varchar(128)"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// toDonationDao converts a campaign.Donation to DonationDao.
func toDonationDao(d *campaign.Donation) *DonationDao {
	return &DonationDao{
		CampaignID:  d.CampaignID,
		DonorWallet: d.DonorWallet,
		Amount:      d.Amount,
		TxSignature: d.TxSignature,
		BlockTime:   d.BlockTime,
	}
}

// toDonation converts a DonationDao to campaign.Donation.
func toDonation(dao *DonationDao) *campaign.Donation {
	return &campaign.Donation{
		CampaignID:  dao.CampaignID,
		DonorWallet: dao.DonorWallet,
		Amount:      dao.Amount,
		TxSignature: dao.TxSignature,
		BlockTime:   dao.BlockTime,
		CreatedAt:   dao.CreatedAt,
	}
}

// toStats converts a StatsDao to campaign.Stats.
func toStats(dao *StatsDao) *campaign.Stats {
	return &campaign.Stats{
		CampaignID:   dao.CampaignID,
		AmountRaised: dao.AmountRaised,
		Supporters:   dao.Supporters,
		UpdatedAt:    dao.UpdatedAt,
	}
}
