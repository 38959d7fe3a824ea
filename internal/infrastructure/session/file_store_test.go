package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

func testRecord(t *testing.T) domain.SessionRecord {
	t.Helper()
	rec, err := domain.NewSessionRecord(domain.Identity{
		ID:    "doc_1",
		Role:  domain.RoleDoctor,
		Email: "doctor@well2nest.com",
	}, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewSessionRecord failed: %v", err)
	}
	return rec
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	rec := testRecord(t)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected a record")
	}
	if loaded.Token != rec.Token || loaded.Role != rec.Role {
		t.Fatalf("record differs after round trip: %+v vs %+v", loaded, rec)
	}

	sess, err := loaded.Session()
	if err != nil {
		t.Fatalf("loaded record does not resolve: %v", err)
	}
	if sess.UserID() != "doc_1" || sess.Role != domain.RoleDoctor {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	rec, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	store := NewFileStore(path)

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("corrupt file must surface as an error")
	}
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, testRecord(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if rec, err := store.Load(ctx); err != nil || rec != nil {
		t.Fatalf("record survived clear: %+v %v", rec, err)
	}

	// Clearing twice is fine.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if err := store.Save(context.Background(), testRecord(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}
