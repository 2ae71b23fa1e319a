package cache

import (
	"errors"
	"testing"
	"time"
)

func countingFetch(value any, calls *int) func() (any, error) {
	return func() (any, error) {
		*calls++
		return value, nil
	}
}

func TestGetOrFetch_HitSkipsFetch(t *testing.T) {
	store := New()
	calls := 0

	first, err := store.GetOrFetch("training?limit=25", time.Minute, countingFetch("payload", &calls))
	if err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	second, err := store.GetOrFetch("training?limit=25", time.Minute, countingFetch("other", &calls))
	if err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("fetch invoked %d times, want 1", calls)
	}
	if first != "payload" || second != "payload" {
		t.Fatalf("values = %v, %v, want cached payload twice", first, second)
	}
}

func TestGetOrFetch_ExpiryRefetches(t *testing.T) {
	store := New()
	calls := 0

	if _, err := store.GetOrFetch("media?page=1", time.Millisecond, countingFetch("v1", &calls)); err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	value, err := store.GetOrFetch("media?page=1", time.Minute, countingFetch("v2", &calls))
	if err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("fetch invoked %d times after expiry, want 2", calls)
	}
	if value != "v2" {
		t.Fatalf("value = %v, want refetched v2", value)
	}
}

func TestGetOrFetch_ErrorsAreNotCached(t *testing.T) {
	store := New()
	boom := errors.New("connect refused")
	calls := 0

	_, err := store.GetOrFetch("training?limit=25", time.Minute, func() (any, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}

	// The failure must not poison the key; the next call fetches again.
	value, err := store.GetOrFetch("training?limit=25", time.Minute, countingFetch("ok", &calls))
	if err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if calls != 2 || value != "ok" {
		t.Fatalf("calls = %d, value = %v, want second fetch to succeed", calls, value)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	store := New()
	seed := map[string]string{
		"training?limit=25&offset=0": "a",
		"training?limit=50&offset=0": "b",
		"media?page=1":               "c",
	}
	for key, value := range seed {
		v := value
		if _, err := store.GetOrFetch(key, time.Minute, func() (any, error) { return v, nil }); err != nil {
			t.Fatalf("seed %q: %v", key, err)
		}
	}

	store.InvalidatePrefix("training")

	calls := 0
	if _, err := store.GetOrFetch("training?limit=25&offset=0", time.Minute, countingFetch("fresh", &calls)); err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if calls != 1 {
		t.Fatal("invalidated entry was served from cache")
	}

	// Unrelated endpoint survives.
	if _, err := store.GetOrFetch("media?page=1", time.Minute, countingFetch("x", &calls)); err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if calls != 1 {
		t.Fatal("media entry should have remained cached")
	}
}

func TestLen(t *testing.T) {
	store := New()
	if store.Len() != 0 {
		t.Fatalf("Len = %d, want 0", store.Len())
	}
	if _, err := store.GetOrFetch("k", time.Minute, func() (any, error) { return 1, nil }); err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}
}
