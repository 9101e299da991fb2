// Package keys provides campaign keypair generation and encryption for
// custodial key management. Campaign wallets are ed25519 Solana accounts;
// the secret key is encrypted with a platform master key before it is
// persisted.
package keys

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// CampaignKeyPair represents a campaign signing keypair.
type CampaignKeyPair struct {
	PublicKey  solana.PublicKey
	PrivateKey solana.PrivateKey // 64-byte ed25519 secret key
}

// GenerateKeyPair generates a new random campaign keypair.
func GenerateKeyPair() (*CampaignKeyPair, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &CampaignKeyPair{
		PublicKey:  priv.PublicKey(),
		PrivateKey: priv,
	}, nil
}

// GenerateVanityKeyPair repeatedly generates keypairs until one's base58
// public key ends with the given suffix, up to maxAttempts. The ceiling is
// a hard failure: callers must never receive a non-matching key silently.
func GenerateVanityKeyPair(suffix string, maxAttempts int) (*CampaignKeyPair, int, error) {
	if suffix == "" {
		kp, err := GenerateKeyPair()
		return kp, 1, err
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		kp, err := GenerateKeyPair()
		if err != nil {
			return nil, attempt, err
		}
		if strings.HasSuffix(kp.PublicKey.String(), suffix) {
			return kp, attempt, nil
		}
	}

	return nil, maxAttempts, fmt.Errorf("could not generate vanity address with suffix %q after %d attempts", suffix, maxAttempts)
}

// KeyPairFromPrivateKey reconstructs a keypair from a raw 64-byte secret key.
func KeyPairFromPrivateKey(secret []byte) (*CampaignKeyPair, error) {
	if len(secret) != 64 {
		return nil, fmt.Errorf("secret key must be 64 bytes (ed25519), got %d", len(secret))
	}
	priv := solana.PrivateKey(secret)
	return &CampaignKeyPair{
		PublicKey:  priv.PublicKey(),
		PrivateKey: priv,
	}, nil
}

// PublicKeyBase58 returns the public key in its transport encoding.
func (kp *CampaignKeyPair) PublicKeyBase58() string {
	return kp.PublicKey.String()
}
