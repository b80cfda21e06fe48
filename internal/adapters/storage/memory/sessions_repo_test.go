package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shelter-catalog/internal/domain/sessions"
)

func TestSessionRepo_MarkAnnouncementShown_ConcurrentClaimsWinOnce(t *testing.T) {
	repo := NewSessionRepo()
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	if err := repo.Create(context.Background(), sessions.Session{ID: "s1", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MarkAnnouncementShown(context.Background(), "s1", now)
			if err != nil {
				t.Errorf("Mark error: %v", err)
				return
			}
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins.Load())
	}
}

func TestSessionRepo_NotFoundAndDuplicates(t *testing.T) {
	repo := NewSessionRepo()

	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.MarkAnnouncementShown(context.Background(), "nope", time.Now()); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Create(context.Background(), sessions.Session{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
	_ = repo.Create(context.Background(), sessions.Session{ID: "dup"})
	if err := repo.Create(context.Background(), sessions.Session{ID: "dup"}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestSessionRepo_DeleteCreatedBefore(t *testing.T) {
	repo := NewSessionRepo()
	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Hour)
		if err := repo.Create(context.Background(), sessions.Session{ID: id, CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	n, err := repo.DeleteCreatedBefore(context.Background(), base.Add(90*time.Minute))
	if err != nil || n != 2 {
		t.Fatalf("expected 2 deleted, got %d err=%v", n, err)
	}
	if _, err := repo.GetByID(context.Background(), "a"); !errors.Is(err, sessions.ErrNotFound) {
		t.Fatalf("expected a to be gone, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "c"); err != nil {
		t.Fatalf("expected c to remain, got %v", err)
	}
}
