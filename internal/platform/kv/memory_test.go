package kv

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "weekly:2026-01-05", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "weekly:2026-01-05")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != `{"a":1}` {
		t.Fatalf("unexpected value: %s", value)
	}

	// Returned slice is a copy.
	value[0] = 'x'
	again, _, _ := store.Get(ctx, "weekly:2026-01-05")
	if string(again) != `{"a":1}` {
		t.Fatalf("stored value was aliased: %s", again)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, _, _ := store.Get(ctx, "k")
	if string(value) != "v2" {
		t.Fatalf("expected last write to win, got %s", value)
	}
}
