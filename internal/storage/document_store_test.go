package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/logger"

	_ "modernc.org/sqlite"
)

func newTestDocumentStore(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	queue := NewDBQueue(db)
	t.Cleanup(queue.Close)

	store, err := NewDocumentStore(queue, logger.New(logger.ERROR))
	if err != nil {
		t.Fatalf("NewDocumentStore failed: %v", err)
	}
	return store
}

func TestDocumentStoreEmptyLoads(t *testing.T) {
	ctx := context.Background()
	store := newTestDocumentStore(t)

	admins, err := store.LoadAdmins(ctx)
	if err != nil || len(admins) != 0 {
		t.Errorf("expected empty admins, got %v (err %v)", admins, err)
	}
	leaderboards, err := store.LoadLeaderboards(ctx)
	if err != nil || len(leaderboards) != 0 {
		t.Errorf("expected empty leaderboards, got %v (err %v)", leaderboards, err)
	}
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestDocumentStore(t)
	admins, credentials, leaderboards := sampleState()

	if err := store.SaveAdmins(ctx, admins); err != nil {
		t.Fatalf("SaveAdmins failed: %v", err)
	}
	if err := store.SaveLeaderboardState(ctx, credentials, leaderboards); err != nil {
		t.Fatalf("SaveLeaderboardState failed: %v", err)
	}

	gotAdmins, err := store.LoadAdmins(ctx)
	if err != nil {
		t.Fatalf("LoadAdmins failed: %v", err)
	}
	if gotAdmins[7] == nil || gotAdmins[7].Role != domain.RoleLeaderboardAdmin {
		t.Errorf("unexpected admins after reload: %+v", gotAdmins[7])
	}

	gotCredentials, err := store.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if gotCredentials[domain.Digest("secret")] == nil {
		t.Errorf("credential missing after reload")
	}

	gotBoards, err := store.LoadLeaderboards(ctx)
	if err != nil {
		t.Fatalf("LoadLeaderboards failed: %v", err)
	}
	board := gotBoards[-100]
	if board == nil || board.Name != "Quiz Night" {
		t.Fatalf("unexpected leaderboard after reload: %+v", board)
	}
	if board.Groups[domain.Digest("Eagles")].Score != 12 {
		t.Errorf("group score lost in round trip")
	}
}

func TestDocumentStoreSaveReplacesWholeCollection(t *testing.T) {
	ctx := context.Background()
	store := newTestDocumentStore(t)
	admins, _, _ := sampleState()

	if err := store.SaveAdmins(ctx, admins); err != nil {
		t.Fatalf("SaveAdmins failed: %v", err)
	}
	if err := store.SaveAdmins(ctx, domain.Admins{}); err != nil {
		t.Fatalf("second SaveAdmins failed: %v", err)
	}

	got, err := store.LoadAdmins(ctx)
	if err != nil {
		t.Fatalf("LoadAdmins failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("save must replace the collection wholesale, got %v", got)
	}
}
