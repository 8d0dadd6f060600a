package transcript

import (
	"context"
	"errors"
	"testing"

	"github.com/eleven-am/stt-sidecar/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	s := NewStore(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return s
}

func TestStore_ArchiveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Archive(ctx, "sess_abc", "hello world"); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	tr, err := s.GetBySession(ctx, "sess_abc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if tr.Text != "hello world" {
		t.Errorf("expected 'hello world', got %q", tr.Text)
	}
	if tr.ID == "" {
		t.Error("expected generated id")
	}
}

func TestStore_ArchiveSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Archive(ctx, "sess_silent", ""); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	if _, err := s.GetBySession(ctx, "sess_silent"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for silent session, got %v", err)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.GetBySession(ctx, "sess_missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Recent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, text := range []string{"one", "two", "three"} {
		if err := s.Archive(ctx, "sess_"+text, text); err != nil {
			t.Fatalf("archive failed: %v", err)
		}
	}

	out, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 transcripts, got %d", len(out))
	}
}
