// Package ledger wraps the Solana JSON-RPC client with the operations the
// custody server needs: balance snapshots, signed lamport transfers with
// confirmation, and inbound-transfer history.
//
// The client is an explicitly constructed, injected dependency; components
// receive it at construction time and never reach for process globals.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/solfund/custody-middleware/pkg/config"
)

// maxTxVersion is passed to getTransaction so versioned transactions are
// returned instead of rejected.
var maxTxVersion = uint64(0)

// Transfer is a single inbound lamport transfer observed on chain.
type Transfer struct {
	Signature string
	Donor     string
	Amount    uint64
	BlockTime *time.Time
}

// Client is a Solana RPC client bound to one endpoint and commitment level.
type Client struct {
	rpc                 *rpc.Client
	commitment          rpc.CommitmentType
	confirmTimeout      time.Duration
	confirmPollInterval time.Duration
	logger              *zap.Logger
}

// NewClient creates a ledger client from configuration.
func NewClient(cfg *config.SolanaConfig, logger *zap.Logger) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("solana rpc_url is required")
	}

	commitment, err := parseCommitment(cfg.Commitment)
	if err != nil {
		return nil, err
	}

	confirmTimeout := cfg.ConfirmTimeout
	if confirmTimeout <= 0 {
		confirmTimeout = 60 * time.Second
	}
	confirmPoll := cfg.ConfirmPollInterval
	if confirmPoll <= 0 {
		confirmPoll = 2 * time.Second
	}

	return &Client{
		rpc:                 rpc.New(cfg.RPCURL),
		commitment:          commitment,
		confirmTimeout:      confirmTimeout,
		confirmPollInterval: confirmPoll,
		logger:              logger,
	}, nil
}

func parseCommitment(s string) (rpc.CommitmentType, error) {
	switch s {
	case "", "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment level: %q", s)
	}
}

// GetBalance returns the live lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, account, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for %s: %w", account, err)
	}
	return out.Value, nil
}

// GetBalances returns the lamport balances for a batch of accounts in a
// single RPC call. The result is positionally aligned with the input; a
// nil entry means the account does not exist on chain yet.
func (c *Client) GetBalances(ctx context.Context, accounts []solana.PublicKey) ([]*uint64, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	out, err := c.rpc.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account batch: %w", err)
	}

	balances := make([]*uint64, len(accounts))
	for i, acct := range out.Value {
		if acct == nil {
			continue
		}
		lamports := acct.Lamports
		balances[i] = &lamports
	}
	return balances, nil
}

// Transfer builds, signs, submits and confirms a lamport transfer from the
// given key to the recipient. It returns only after the transaction reaches
// the client's commitment level; an unconfirmed submission is an error and
// the caller must treat the transfer as not having happened.
func (c *Client) Transfer(ctx context.Context, from solana.PrivateKey, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	payer := from.PublicKey()

	recent, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, payer, to).Build(),
		},
		recent.Value.Blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &from
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to submit transaction: %w", err)
	}

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		return solana.Signature{}, err
	}

	return sig, nil
}

// awaitConfirmation polls signature status until the transaction reaches
// the client's commitment level or the confirmation window elapses.
func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.confirmPollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err == nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction %s failed on chain: %v", sig, status.Err)
			}
			if confirmed(status.ConfirmationStatus, c.commitment) {
				return nil
			}
		}
		if err != nil && c.logger != nil {
			c.logger.Debug("signature status check failed, retrying", zap.String("signature", sig.String()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation of %s timed out: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

func confirmed(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[rpc.ConfirmationStatusType]int{
		rpc.ConfirmationStatusProcessed: 1,
		rpc.ConfirmationStatusConfirmed: 2,
		rpc.ConfirmationStatusFinalized: 3,
	}
	wantRank := 2
	switch want {
	case rpc.CommitmentProcessed:
		wantRank = 1
	case rpc.CommitmentFinalized:
		wantRank = 3
	}
	return rank[status] >= wantRank
}

// InboundTransfers fetches recent transaction history for an account,
// bounded by an optional cursor signature, and extracts inbound lamport
// transfers addressed to it. Transfers are returned oldest first together
// with the newest successfully inspected signature for cursor advancement;
// a failed transaction fetch ends the walk early so the cursor stays below
// the failure and the next cycle retries it.
//
// The amount is derived from the account's pre/post balance delta within
// each transaction, which captures system transfers without depending on
// parsed-instruction output. The donor is the transaction fee payer.
func (c *Client) InboundTransfers(ctx context.Context, account solana.PublicKey, until string, limit int) ([]Transfer, string, error) {
	opts := &rpc.GetSignaturesForAddressOpts{
		Commitment: c.commitment,
	}
	if limit > 0 {
		opts.Limit = &limit
	}
	if until != "" {
		cursor, err := solana.SignatureFromBase58(until)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor signature %q: %w", until, err)
		}
		opts.Until = cursor
	}

	sigs, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, account, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get signatures for %s: %w", account, err)
	}
	if len(sigs) == 0 {
		return nil, "", nil
	}

	var transfers []Transfer
	newest := ""
	// Newest first from RPC; walk backwards so the result is oldest first.
	for i := len(sigs) - 1; i >= 0; i-- {
		info := sigs[i]
		if info.Err != nil {
			// On-chain failure is terminal; no need to fetch or retry it.
			newest = info.Signature.String()
			continue
		}

		tr, err := c.extractInbound(ctx, account, info)
		if err != nil {
			// Stop at the first failed fetch and report only the signatures
			// inspected so far. The cursor then holds below the failure and
			// the next cycle retries it instead of skipping the transfer.
			if c.logger != nil {
				c.logger.Warn("failed to inspect transaction, holding cursor",
					zap.String("signature", info.Signature.String()),
					zap.Error(err))
			}
			return transfers, newest, nil
		}
		newest = info.Signature.String()
		if tr != nil {
			transfers = append(transfers, *tr)
		}
	}

	return transfers, newest, nil
}

func (c *Client) extractInbound(ctx context.Context, account solana.PublicKey, info *rpc.TransactionSignature) (*Transfer, error) {
	out, err := c.rpc.GetTransaction(ctx, info.Signature, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     c.commitment,
		MaxSupportedTransactionVersion: &maxTxVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if out == nil || out.Meta == nil || out.Meta.Err != nil {
		return nil, nil
	}

	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	idx := -1
	for i, key := range tx.Message.AccountKeys {
		if key.Equals(account) {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(out.Meta.PreBalances) || idx >= len(out.Meta.PostBalances) {
		return nil, nil
	}

	pre := out.Meta.PreBalances[idx]
	post := out.Meta.PostBalances[idx]
	if post <= pre {
		// Not an inbound transfer for this account.
		return nil, nil
	}

	donor := ""
	if len(tx.Message.AccountKeys) > 0 {
		donor = tx.Message.AccountKeys[0].String()
	}

	tr := &Transfer{
		Signature: info.Signature.String(),
		Donor:     donor,
		Amount:    post - pre,
	}
	if info.BlockTime != nil {
		bt := info.BlockTime.Time()
		tr.BlockTime = &bt
	}
	return tr, nil
}
