// Package auth verifies wallet-signed challenges authorizing sensitive
// campaign mutations.
//
// A caller proves control of a wallet by signing a canonical, timestamped
// message with its ed25519 key. The server reconstructs the expected
// message from the request payload and requires byte-exact equality before
// verifying the signature, so a valid signature cannot be replayed against
// a different subject. Verification is a pure precondition check: it makes
// no authorization decision beyond "this wallet signed this exact message
// recently".
package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Action identifies a signable mutation.
type Action string

const (
	ActionRedeemFunds     Action = "REDEEM_FUNDS"
	ActionDeleteCampaign  Action = "DELETE_CAMPAIGN"
	ActionUpdateSocials   Action = "UPDATE_SOCIALS"
	ActionCreateCampaign  Action = "CREATE_CAMPAIGN"
	ActionApproveCampaign Action = "APPROVE_CAMPAIGN"
)

const (
	// MaxChallengeAge bounds how old a signed challenge may be.
	MaxChallengeAge = 5 * time.Minute
	// MaxClockSkew bounds how far in the future a timestamp may claim to be.
	MaxClockSkew = 60 * time.Second
)

var (
	ErrMissingFields     = errors.New("missing authentication data")
	ErrUnknownAction     = errors.New("unknown action")
	ErrChallengeExpired  = errors.New("signature expired")
	ErrTimestampInFuture = errors.New("invalid timestamp")
	ErrMessageMismatch   = errors.New("invalid message format")
	ErrInvalidSignature  = errors.New("invalid signature")
)

// Challenge is the signed proof submitted alongside a mutation payload.
// Timestamp is unix milliseconds, matching what wallet frontends produce.
// Challenges are ephemeral and never persisted.
type Challenge struct {
	WalletAddress string
	Signature     string
	Message       string
	Timestamp     int64
}

// template holds the human-readable title and subject field label used to
// build an action's canonical message.
type template struct {
	title        string
	subjectField string
}

var templates = map[Action]template{
	ActionRedeemFunds:     {title: "Redeem Funds", subjectField: "Campaign ID"},
	ActionDeleteCampaign:  {title: "Delete Campaign", subjectField: "Campaign ID"},
	ActionUpdateSocials:   {title: "Update Social Links", subjectField: "Campaign ID"},
	ActionCreateCampaign:  {title: "Create Campaign", subjectField: "Name"},
	ActionApproveCampaign: {title: "Approve Campaign", subjectField: "Campaign ID"},
}

// FormatMessage builds the canonical message a wallet must sign to
// authorize the given action on the given subject.
func FormatMessage(action Action, subject string, timestamp int64, walletAddress string) (string, error) {
	tpl, ok := templates[action]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return fmt.Sprintf("%s\n%s: %s\nTimestamp: %d\nWallet: %s",
		tpl.title, tpl.subjectField, subject, timestamp, walletAddress), nil
}

// VerifyChallenge checks a signed challenge for the given action and
// subject and returns the verified signer's public key.
//
// Checks, in order: required fields present, timestamp within the allowed
// window, byte-exact canonical message match, and ed25519 signature
// validity over the message bytes. Each failure mode returns a distinct
// sentinel error so callers can surface specific rejections.
func VerifyChallenge(action Action, subject string, ch Challenge, now time.Time) (solana.PublicKey, error) {
	if ch.WalletAddress == "" || ch.Signature == "" || ch.Message == "" || ch.Timestamp == 0 {
		return solana.PublicKey{}, ErrMissingFields
	}

	issued := time.UnixMilli(ch.Timestamp)
	if age := now.Sub(issued); age > MaxChallengeAge {
		return solana.PublicKey{}, fmt.Errorf("%w: issued %s ago", ErrChallengeExpired, age.Truncate(time.Second))
	}
	if ahead := issued.Sub(now); ahead > MaxClockSkew {
		return solana.PublicKey{}, ErrTimestampInFuture
	}

	expected, err := FormatMessage(action, subject, ch.Timestamp, ch.WalletAddress)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if ch.Message != expected {
		return solana.PublicKey{}, ErrMessageMismatch
	}

	pubKey, err := solana.PublicKeyFromBase58(ch.WalletAddress)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: bad wallet address: %v", ErrInvalidSignature, err)
	}
	sig, err := solana.SignatureFromBase58(ch.Signature)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: bad signature encoding: %v", ErrInvalidSignature, err)
	}

	if !ed25519.Verify(ed25519.PublicKey(pubKey.Bytes()), []byte(ch.Message), sig[:]) {
		return solana.PublicKey{}, ErrInvalidSignature
	}

	return pubKey, nil
}
