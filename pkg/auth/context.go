package auth

import (
	"context"
)

// Context keys for authentication data
type contextKey string

const (
	// ContextKeyVerifiedWallet is the context key for the verified signer wallet
	ContextKeyVerifiedWallet contextKey = "verified_wallet"
	// ContextKeyChallengeTimestamp is the context key for the accepted challenge timestamp
	ContextKeyChallengeTimestamp contextKey = "challenge_timestamp"
)

// WithVerifiedWallet adds the verified signer wallet to the context
func WithVerifiedWallet(ctx context.Context, wallet string) context.Context {
	return context.WithValue(ctx, ContextKeyVerifiedWallet, wallet)
}

// VerifiedWalletFromContext retrieves the verified signer wallet from the context
func VerifiedWalletFromContext(ctx context.Context) (string, bool) {
	wallet, ok := ctx.Value(ContextKeyVerifiedWallet).(string)
	return wallet, ok
}

// WithChallengeTimestamp adds the accepted challenge timestamp to the context
func WithChallengeTimestamp(ctx context.Context, timestamp int64) context.Context {
	return context.WithValue(ctx, ContextKeyChallengeTimestamp, timestamp)
}

// ChallengeTimestampFromContext retrieves the accepted challenge timestamp from the context
func ChallengeTimestampFromContext(ctx context.Context) (int64, bool) {
	ts, ok := ctx.Value(ContextKeyChallengeTimestamp).(int64)
	return ts, ok
}
