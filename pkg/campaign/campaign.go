// Package campaign holds the domain models for campaign custody accounts
// and their donation history.
package campaign

import "time"

// Wallet represents the custody account generated for a single campaign.
// The platform holds the signing key; the creator only ever receives funds
// through redemption.
type Wallet struct {
	CampaignID         string
	PublicKey          string
	SecretKeyEncrypted string
	CreatorWallet      string

	// LastBalance is the lamport balance as of the last poll observation.
	LastBalance   int64
	TotalReceived int64
	FeesCollected int64

	Redeemed        bool
	TotalRedeemed   int64
	RedeemedAt      *time.Time
	RedeemSignature string

	LastChecked *time.Time
	CreatedAt   time.Time
}

// Donation represents a single observed inbound transfer to a campaign
// wallet. Records are immutable once written; TxSignature is globally
// unique and is the deduplication authority for ingestion.
type Donation struct {
	CampaignID  string
	DonorWallet string
	Amount      int64
	TxSignature string
	BlockTime   *time.Time
	CreatedAt   time.Time
}

// Stats is the displayed aggregate for a campaign, maintained by the
// donation ingester.
type Stats struct {
	CampaignID   string
	AmountRaised int64
	Supporters   int64
	UpdatedAt    *time.Time
}

// New creates a Wallet from the given parameters.
func New(campaignID, publicKey, encryptedSecret, creatorWallet string) *Wallet {
	return &Wallet{
		CampaignID:         campaignID,
		PublicKey:          publicKey,
		SecretKeyEncrypted: encryptedSecret,
		CreatorWallet:      creatorWallet,
	}
}

// CreateWalletRequest is the payload for provisioning a campaign wallet.
type CreateWalletRequest struct {
	CampaignID    string `json:"campaign_id" validate:"required,max=64"`
	CreatorWallet string `json:"creator_wallet" validate:"required,base58_pubkey"`
}

// CreateWalletResponse is returned from wallet provisioning. Creation is
// idempotent: repeated requests return the already-provisioned key.
type CreateWalletResponse struct {
	CampaignWallet string  `json:"campaign_wallet"`
	FeeRate        float64 `json:"fee_rate"`
}

// StatusResponse reports the custody account state, including the live
// on-chain balance fetched at call time.
type StatusResponse struct {
	CampaignWallet string     `json:"campaign_wallet"`
	LiveBalance    int64      `json:"live_balance"`
	TotalReceived  int64      `json:"total_received"`
	FeesCollected  int64      `json:"fees_collected"`
	Redeemed       bool       `json:"redeemed"`
	RedeemedAt     *time.Time `json:"redeemed_at,omitempty"`
}

// RedeemRequest carries the signed challenge authorizing a payout.
type RedeemRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
	Message       string `json:"message" validate:"required"`
	Timestamp     int64  `json:"timestamp" validate:"required"`
}

// RedeemResponse reports a confirmed payout.
type RedeemResponse struct {
	Payout      int64  `json:"payout"`
	TxSignature string `json:"tx_signature"`
}
