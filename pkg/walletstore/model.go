package walletstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/solfund/custody-middleware/pkg/campaign"
)

// WalletDao is a data access object that maps directly to the 'campaign_wallets' table in PostgreSQL.
type WalletDao struct {
	bun.BaseModel      `bun:"table:campaign_wallets,alias:cw"`
	ID                 int64      `bun:"id,pk,autoincrement"`
	CampaignID         string     `bun:"campaign_id,unique,notnull,type:varchar(64)"`
	PublicKey          string     `bun:"public_key,unique,notnull,type:varchar(64)"`
	SecretKeyEncrypted string     `bun:"secret_key_encrypted,notnull,type:text"`
	CreatorWallet      string     `bun:"creator_wallet,notnull,type:varchar(64)"`
	LastBalance        int64      `bun:"last_balance,notnull,default:0"`
	TotalReceived      int64      `bun:"total_received,notnull,default:0"`
	FeesCollected      int64      `bun:"fees_collected,notnull,default:0"`
	Redeemed           bool       `bun:"redeemed,notnull,default:false"`
	TotalRedeemed      int64      `bun:"total_redeemed,notnull,default:0"`
	RedeemedAt         *time.Time `bun:"redeemed_at"`
	RedeemSignature    *string    `bun:"redeem_signature,type:varchar(128)"`
	LastChecked        *time.Time `bun:"last_checked"`
	CreatedAt          time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
}

// toWalletDao converts a campaign.Wallet to WalletDao.
func toWalletDao(w *campaign.Wallet) *WalletDao {
	dao := &WalletDao{
		CampaignID:         w.CampaignID,
		PublicKey:          w.PublicKey,
		SecretKeyEncrypted: w.SecretKeyEncrypted,
		CreatorWallet:      w.CreatorWallet,
		LastBalance:        w.LastBalance,
		TotalReceived:      w.TotalReceived,
		FeesCollected:      w.FeesCollected,
		Redeemed:           w.Redeemed,
		TotalRedeemed:      w.TotalRedeemed,
	}

	if w.RedeemedAt != nil {
		dao.RedeemedAt = w.RedeemedAt
	}
	if w.RedeemSignature != "" {
		dao.RedeemSignature = &w.RedeemSignature
	}
	if w.LastChecked != nil {
		dao.LastChecked = w.LastChecked
	}

	return dao
}

// toWallet converts a WalletDao to campaign.Wallet.
func toWallet(dao *WalletDao) *campaign.Wallet {
	w := &campaign.Wallet{
		CampaignID:         dao.CampaignID,
		PublicKey:          dao.PublicKey,
		SecretKeyEncrypted: dao.SecretKeyEncrypted,
		CreatorWallet:      dao.CreatorWallet,
		LastBalance:        dao.LastBalance,
		TotalReceived:      dao.TotalReceived,
		FeesCollected:      dao.FeesCollected,
		Redeemed:           dao.Redeemed,
		TotalRedeemed:      dao.TotalRedeemed,
		CreatedAt:          dao.CreatedAt,
	}

	if dao.RedeemedAt != nil {
		w.RedeemedAt = dao.RedeemedAt
	}
	if dao.RedeemSignature != nil {
		w.RedeemSignature = *dao.RedeemSignature
	}
	if dao.LastChecked != nil {
		w.LastChecked = dao.LastChecked
	}

	return w
}
