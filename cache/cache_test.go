package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "dashboard:stats", map[string]int{"villas": 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got map[string]int
	ok, err := m.Get(ctx, "dashboard:stats", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got["villas"] != 3 {
		t.Fatalf("expected villas=3, got %v", got)
	}

	now = now.Add(2 * time.Minute)
	ok, _ = m.Get(ctx, "dashboard:stats", &got)
	if ok {
		t.Fatal("expected entry to expire after ttl")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry should be dropped on read, len=%d", m.Len())
	}
}

func TestMemorySweepAndPrefix(t *testing.T) {
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Set(ctx, "occupancy:2024-01-01", 1, time.Minute)
	_ = m.Set(ctx, "occupancy:2024-01-02", 2, time.Hour)
	_ = m.Set(ctx, "dashboard:stats", 3, 0)

	now = now.Add(10 * time.Minute)
	if removed := m.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}

	if err := m.DeletePrefix(ctx, "occupancy:"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("only the dashboard entry should remain, len=%d", m.Len())
	}

	var v int
	if ok, _ := m.Get(ctx, "dashboard:stats", &v); !ok || v != 3 {
		t.Fatalf("zero ttl entry should never expire, ok=%v v=%d", ok, v)
	}
}

func TestNewWithoutRedisURLIsMemory(t *testing.T) {
	s := New("")
	defer s.Close()
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
}

func TestMemoryGetKeepsEntryRefreshedDuringExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "occupancy:2024-01-01", "stale", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	now = now.Add(2 * time.Minute)

	// the first clock read inside Get races with a writer refreshing the key
	refreshed := false
	m.now = func() time.Time {
		if !refreshed {
			refreshed = true
			if err := m.Set(ctx, "occupancy:2024-01-01", "fresh", time.Minute); err != nil {
				t.Errorf("refresh: %v", err)
			}
		}
		return now
	}

	var got string
	ok, err := m.Get(ctx, "occupancy:2024-01-01", &got)
	if err != nil || !ok {
		t.Fatalf("expected refreshed entry to survive, ok=%v err=%v", ok, err)
	}
	if got != "fresh" {
		t.Fatalf("got %q, want fresh", got)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
}
