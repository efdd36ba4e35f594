package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "state", "vouchers.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.LoadSession(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("LoadSession() on empty db = %v, want ErrNoSession", err)
	}

	started := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	if err := repo.SaveSession(ctx, SessionRecord{Username: "koushik", DisplayName: "Koushik", StartedAt: started}); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	// a second login replaces the first
	if err := repo.SaveSession(ctx, SessionRecord{Username: "koushik", DisplayName: "K", StartedAt: started.Add(time.Hour)}); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := repo.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	if got.DisplayName != "K" || !got.StartedAt.Equal(started.Add(time.Hour)) {
		t.Errorf("LoadSession() = %+v", got)
	}

	if err := repo.DeleteSession(ctx); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := repo.LoadSession(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("LoadSession() after delete = %v, want ErrNoSession", err)
	}
}

func TestLocalNodes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, n := range []string{"Site B", "Site A"} {
		if err := repo.AddLocalNode(ctx, "alice", n); err != nil {
			t.Fatalf("AddLocalNode(%q) error = %v", n, err)
		}
	}
	if err := repo.AddLocalNode(ctx, "bob", "Site A"); err != nil {
		t.Fatalf("same name for another user should be allowed: %v", err)
	}
	if err := repo.AddLocalNode(ctx, "alice", "Site A"); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("duplicate AddLocalNode() = %v, want ErrDuplicateNode", err)
	}

	nodes, err := repo.LocalNodes(ctx, "alice")
	if err != nil {
		t.Fatalf("LocalNodes() error = %v", err)
	}
	if len(nodes) != 2 || nodes[0] != "Site B" || nodes[1] != "Site A" {
		t.Fatalf("LocalNodes() = %v, want creation order", nodes)
	}

	if err := repo.RenameLocalNode(ctx, "alice", "Site B", "Site C"); err != nil {
		t.Fatalf("RenameLocalNode() error = %v", err)
	}
	if err := repo.RenameLocalNode(ctx, "alice", "Site C", "Site A"); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("rename onto existing = %v, want ErrDuplicateNode", err)
	}
	if err := repo.RemoveLocalNode(ctx, "alice", "Site A"); err != nil {
		t.Fatalf("RemoveLocalNode() error = %v", err)
	}

	nodes, _ = repo.LocalNodes(ctx, "alice")
	if len(nodes) != 1 || nodes[0] != "Site C" {
		t.Fatalf("LocalNodes() = %v, want [Site C]", nodes)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vouchers.db")
	for i := 0; i < 2; i++ {
		repo, err := NewSQLiteRepository(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		repo.Close()
	}
}

func TestSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vouchers.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	defer repo.Close()

	version, dirty, err := SchemaVersion(path)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("SchemaVersion() = %d, dirty=%v; want 1, false", version, dirty)
	}
}
