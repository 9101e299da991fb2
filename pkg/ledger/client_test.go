package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// fakeRPC is a minimal Solana JSON-RPC endpoint serving canned responses.
// Transaction responses are keyed by signature; a missing entry yields a
// JSON-RPC error, standing in for a transient node failure.
type fakeRPC struct {
	signatures   []map[string]any
	transactions map[string]map[string]any
	fetched      []string
}

func (f *fakeRPC) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reply := func(body string) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,%s}`, req.ID, body)
		}

		switch req.Method {
		case "getSignaturesForAddress":
			out, _ := json.Marshal(f.signatures)
			reply(fmt.Sprintf(`"result":%s`, out))
		case "getTransaction":
			var sig string
			_ = json.Unmarshal(req.Params[0], &sig)
			f.fetched = append(f.fetched, sig)
			tx, ok := f.transactions[sig]
			if !ok {
				reply(`"error":{"code":-32005,"message":"node is behind"}`)
				return
			}
			out, _ := json.Marshal(tx)
			reply(fmt.Sprintf(`"result":%s`, out))
		default:
			reply(`"error":{"code":-32601,"message":"method not found"}`)
		}
	}
}

func newTestClient(t *testing.T, f *fakeRPC) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return &Client{
		rpc:        rpc.New(srv.URL),
		commitment: rpc.CommitmentConfirmed,
		logger:     zap.NewNop(),
	}
}

func testSignature(t *testing.T, key solana.PrivateKey, seed string) solana.Signature {
	t.Helper()
	sig, err := key.Sign([]byte(seed))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	return sig
}

// inboundTxResult builds a getTransaction result for a signed system
// transfer of the given amount from donor to account.
func inboundTxResult(t *testing.T, donor solana.PrivateKey, account solana.PublicKey, lamports uint64) map[string]any {
	t.Helper()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, donor.PublicKey(), account).Build(),
		},
		solana.Hash{},
		solana.TransactionPayer(donor.PublicKey()),
	)
	if err != nil {
		t.Fatalf("failed to build transaction: %v", err)
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(donor.PublicKey()) {
			return &donor
		}
		return nil
	}); err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal transaction: %v", err)
	}

	// Account keys are payer, recipient, system program.
	return map[string]any{
		"slot":        100,
		"transaction": []any{base64.StdEncoding.EncodeToString(raw), "base64"},
		"meta": map[string]any{
			"err":          nil,
			"fee":          5000,
			"preBalances":  []uint64{10_000_000, 0, 1},
			"postBalances": []uint64{10_000_000 - 5000 - lamports, lamports, 1},
		},
	}
}

func TestClient_InboundTransfers_WalksOldestFirst(t *testing.T) {
	donor, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := solana.NewWallet().PublicKey()

	oldest := testSignature(t, donor, "oldest")
	failed := testSignature(t, donor, "failed-on-chain")
	newest := testSignature(t, donor, "newest")

	f := &fakeRPC{
		// Newest first, matching the RPC ordering.
		signatures: []map[string]any{
			{"signature": newest.String(), "slot": 102, "err": nil},
			{"signature": failed.String(), "slot": 101, "err": map[string]any{"InstructionError": []any{0, map[string]any{"Custom": 1}}}},
			{"signature": oldest.String(), "slot": 100, "err": nil},
		},
		transactions: map[string]map[string]any{
			oldest.String(): inboundTxResult(t, donor, account, 300),
			newest.String(): inboundTxResult(t, donor, account, 700),
		},
	}
	c := newTestClient(t, f)

	transfers, cursor, err := c.InboundTransfers(context.Background(), account, "", 0)
	if err != nil {
		t.Fatalf("InboundTransfers() failed: %v", err)
	}
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(transfers))
	}
	if transfers[0].Amount != 300 || transfers[1].Amount != 700 {
		t.Fatalf("expected oldest-first amounts [300 700], got [%d %d]", transfers[0].Amount, transfers[1].Amount)
	}
	if transfers[0].Donor != donor.PublicKey().String() {
		t.Fatalf("expected donor %s, got %s", donor.PublicKey(), transfers[0].Donor)
	}
	if cursor != newest.String() {
		t.Fatalf("expected cursor %s, got %s", newest, cursor)
	}
	// The failed transaction is terminal and never fetched.
	if len(f.fetched) != 2 {
		t.Fatalf("expected 2 transaction fetches, got %d: %v", len(f.fetched), f.fetched)
	}
}

func TestClient_InboundTransfers_HoldsCursorOnFetchFailure(t *testing.T) {
	donor, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := solana.NewWallet().PublicKey()

	oldest := testSignature(t, donor, "oldest")
	flaky := testSignature(t, donor, "flaky")
	newest := testSignature(t, donor, "newest")

	f := &fakeRPC{
		signatures: []map[string]any{
			{"signature": newest.String(), "slot": 102, "err": nil},
			{"signature": flaky.String(), "slot": 101, "err": nil},
			{"signature": oldest.String(), "slot": 100, "err": nil},
		},
		// No entry for the middle signature, so its fetch errors out.
		transactions: map[string]map[string]any{
			oldest.String(): inboundTxResult(t, donor, account, 300),
			newest.String(): inboundTxResult(t, donor, account, 700),
		},
	}
	c := newTestClient(t, f)

	transfers, cursor, err := c.InboundTransfers(context.Background(), account, "", 0)
	if err != nil {
		t.Fatalf("InboundTransfers() failed: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(transfers))
	}
	if transfers[0].Amount != 300 {
		t.Fatalf("expected amount 300, got %d", transfers[0].Amount)
	}
	// The cursor stays below the failed fetch so the next cycle retries it.
	if cursor != oldest.String() {
		t.Fatalf("expected cursor %s, got %s", oldest, cursor)
	}
	// The walk stops at the failure; nothing newer is fetched.
	if len(f.fetched) != 2 {
		t.Fatalf("expected 2 transaction fetches, got %d: %v", len(f.fetched), f.fetched)
	}
}

func TestClient_InboundTransfers_FailureOnOldestHoldsEverything(t *testing.T) {
	donor, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	account := solana.NewWallet().PublicKey()

	oldest := testSignature(t, donor, "oldest")

	f := &fakeRPC{
		signatures: []map[string]any{
			{"signature": oldest.String(), "slot": 100, "err": nil},
		},
		transactions: map[string]map[string]any{},
	}
	c := newTestClient(t, f)

	transfers, cursor, err := c.InboundTransfers(context.Background(), account, "", 0)
	if err != nil {
		t.Fatalf("InboundTransfers() failed: %v", err)
	}
	if len(transfers) != 0 {
		t.Fatalf("expected no transfers, got %d", len(transfers))
	}
	if cursor != "" {
		t.Fatalf("expected empty cursor, got %s", cursor)
	}
}
