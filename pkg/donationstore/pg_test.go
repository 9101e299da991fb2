package donationstore

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solfund/custody-middleware/pkg/campaign"
	"github.com/solfund/custody-middleware/pkg/pgutil"
	mghelper "github.com/solfund/custody-middleware/pkg/pgutil/migrations"
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()
	requireDockerAccess(t)

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &DonationDao{}, &StatsDao{}, &SyncCursorDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return ctx, NewStore(db)
}

func requireDockerAccess(t *testing.T) {
	t.Helper()

	candidates := []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	}

	for _, sock := range candidates {
		if sock == "" {
			continue
		}
		if _, err := os.Stat(sock); err != nil {
			continue
		}
		conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", sock)
		if err == nil {
			_ = conn.Close()
			return
		}
	}

	t.Skip("docker daemon socket is not accessible; skipping testcontainer-backed donationstore tests")
}

func newTestDonation(campaignID, signature string, amount int64) *campaign.Donation {
	blockTime := time.Now().UTC().Truncate(time.Second)
	return &campaign.Donation{
		CampaignID:  campaignID,
		DonorWallet: "Dn1xyz1XUCZYsNpfMZ7K8q1B8dvAyTvYprNrK42sGG1",
		Amount:      amount,
		TxSignature: signature,
		BlockTime:   &blockTime,
	}
}

func TestDonationPGStore_InsertAndAggregate(t *testing.T) {
	ctx, s := setupStore(t)

	inserted, err := s.InsertDonation(ctx, newTestDonation("camp-1", "sig-1", 1_000_000))
	if err != nil {
		t.Fatalf("InsertDonation() failed: %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert to be recorded")
	}

	inserted, err = s.InsertDonation(ctx, newTestDonation("camp-1", "sig-2", 2_500_000))
	if err != nil {
		t.Fatalf("InsertDonation() failed: %v", err)
	}
	if !inserted {
		t.Fatalf("expected second insert to be recorded")
	}

	stats, err := s.GetStats(ctx, "camp-1")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.AmountRaised != 3_500_000 {
		t.Fatalf("amount raised: got %d want %d", stats.AmountRaised, 3_500_000)
	}
	if stats.Supporters != 2 {
		t.Fatalf("supporters: got %d want 2", stats.Supporters)
	}

	donations, err := s.ListDonations(ctx, "camp-1")
	if err != nil {
		t.Fatalf("ListDonations() failed: %v", err)
	}
	if len(donations) != 2 {
		t.Fatalf("donation count: got %d want 2", len(donations))
	}
	if donations[0].TxSignature != "sig-1" {
		t.Fatalf("unexpected order: first donation is %s", donations[0].TxSignature)
	}
}

func TestDonationPGStore_DuplicateSignatureIsNoop(t *testing.T) {
	ctx, s := setupStore(t)

	inserted, err := s.InsertDonation(ctx, newTestDonation("camp-dup", "sig-dup", 500_000))
	if err != nil {
		t.Fatalf("InsertDonation() failed: %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert to be recorded")
	}

	// Replayed signature with a different amount must change nothing.
	inserted, err = s.InsertDonation(ctx, newTestDonation("camp-dup", "sig-dup", 999_999))
	if err != nil {
		t.Fatalf("InsertDonation() replay failed: %v", err)
	}
	if inserted {
		t.Fatalf("expected replay to be a no-op")
	}

	stats, err := s.GetStats(ctx, "camp-dup")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.AmountRaised != 500_000 {
		t.Fatalf("amount raised moved on replay: got %d want %d", stats.AmountRaised, 500_000)
	}
	if stats.Supporters != 1 {
		t.Fatalf("supporters moved on replay: got %d want 1", stats.Supporters)
	}

	donations, err := s.ListDonations(ctx, "camp-dup")
	if err != nil {
		t.Fatalf("ListDonations() failed: %v", err)
	}
	if len(donations) != 1 {
		t.Fatalf("donation count: got %d want 1", len(donations))
	}
	if donations[0].Amount != 500_000 {
		t.Fatalf("recorded amount changed: got %d", donations[0].Amount)
	}
}

func TestDonationPGStore_StatsNotFound(t *testing.T) {
	ctx, s := setupStore(t)

	_, err := s.GetStats(ctx, "camp-none")
	if !errors.Is(err, ErrStatsNotFound) {
		t.Fatalf("expected ErrStatsNotFound, got %v", err)
	}
}

func TestDonationPGStore_Cursor(t *testing.T) {
	ctx, s := setupStore(t)

	cursor, err := s.GetCursor(ctx, "camp-cur")
	if err != nil {
		t.Fatalf("GetCursor() failed: %v", err)
	}
	if cursor != "" {
		t.Fatalf("expected empty cursor before first sync, got %q", cursor)
	}

	if err := s.AdvanceCursor(ctx, "camp-cur", "sig-a"); err != nil {
		t.Fatalf("AdvanceCursor() failed: %v", err)
	}
	cursor, err = s.GetCursor(ctx, "camp-cur")
	if err != nil {
		t.Fatalf("GetCursor() failed: %v", err)
	}
	if cursor != "sig-a" {
		t.Fatalf("cursor: got %q want %q", cursor, "sig-a")
	}

	if err := s.AdvanceCursor(ctx, "camp-cur", "sig-b"); err != nil {
		t.Fatalf("AdvanceCursor() upsert failed: %v", err)
	}
	cursor, err = s.GetCursor(ctx, "camp-cur")
	if err != nil {
		t.Fatalf("GetCursor() failed: %v", err)
	}
	if cursor != "sig-b" {
		t.Fatalf("cursor: got %q want %q", cursor, "sig-b")
	}
}
