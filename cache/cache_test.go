package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type memStore struct {
	entries map[string]Entry
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]Entry{}}
}

func (s *memStore) Get(name string) (Entry, error) {
	e, ok := s.entries[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *memStore) Put(name string, e Entry) error {
	s.entries[name] = e
	return nil
}

type countingFetch struct {
	calls   int
	payload []byte
	err     error
}

func (f *countingFetch) fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.payload, f.err
}

func TestFeedCache_TTL(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	fetch := &countingFetch{payload: []byte("snapshot")}
	fc := NewFeedCache(newMemStore(), fetch.fetch, WithClock(clock))

	ctx := context.Background()

	if got := fc.Get(ctx, "http://feeds/tu", "trip-updates"); !bytes.Equal(got, []byte("snapshot")) {
		t.Fatalf("first get = %q", got)
	}
	if fetch.calls != 1 {
		t.Fatalf("first get should fetch once, got %d", fetch.calls)
	}

	// Four minutes later: still within TTL, answered from the store.
	now = now.Add(4 * time.Minute)
	if got := fc.Get(ctx, "http://feeds/tu", "trip-updates"); !bytes.Equal(got, []byte("snapshot")) {
		t.Fatalf("cached get = %q", got)
	}
	if fetch.calls != 1 {
		t.Errorf("get at T+4min should not fetch, calls = %d", fetch.calls)
	}

	// Six minutes after the refresh point: expired, fetched again.
	now = now.Add(2 * time.Minute)
	fetch.payload = []byte("fresh")
	if got := fc.Get(ctx, "http://feeds/tu", "trip-updates"); !bytes.Equal(got, []byte("fresh")) {
		t.Fatalf("expired get = %q", got)
	}
	if fetch.calls != 2 {
		t.Errorf("get at T+6min should fetch, calls = %d", fetch.calls)
	}
}

func TestFeedCache_FetchFailureReturnsNil(t *testing.T) {
	fetch := &countingFetch{err: errors.New("connection refused")}
	fc := NewFeedCache(newMemStore(), fetch.fetch)

	if got := fc.Get(context.Background(), "http://feeds/tu", "trip-updates"); got != nil {
		t.Errorf("failed fetch should yield nil, got %q", got)
	}
}

func TestFeedCache_StoreWriteFailureStillReturnsPayload(t *testing.T) {
	fetch := &countingFetch{payload: []byte("snapshot")}
	fc := NewFeedCache(failingStore{}, fetch.fetch)

	if got := fc.Get(context.Background(), "http://feeds/tu", "trip-updates"); !bytes.Equal(got, []byte("snapshot")) {
		t.Errorf("payload should survive a store write failure, got %q", got)
	}
}

type failingStore struct{}

func (failingStore) Get(string) (Entry, error) { return Entry{}, errors.New("disk error") }
func (failingStore) Put(string, Entry) error   { return errors.New("disk error") }

func TestDirStore_RoundTrip(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	in := Entry{
		CachedTime: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		Payload:    []byte(`{"entity":[]}`),
	}
	if err := store.Put("trip-updates", in); err != nil {
		t.Fatal(err)
	}
	out, err := store.Get("trip-updates")
	if err != nil {
		t.Fatal(err)
	}
	if !out.CachedTime.Equal(in.CachedTime) || !bytes.Equal(out.Payload, in.Payload) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDirStore_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing entry err = %v, want ErrNotFound", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("broken"); !errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt entry err = %v, want ErrNotFound", err)
	}
}

func TestFeedCache_CorruptEntryTriggersRefetch(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "trip-updates.json"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	fetch := &countingFetch{payload: []byte("fresh")}
	fc := NewFeedCache(store, fetch.fetch)
	got := fc.Get(context.Background(), "http://feeds/tu", "trip-updates")
	if !bytes.Equal(got, []byte("fresh")) {
		t.Fatalf("get over corrupt entry = %q", got)
	}
	if fetch.calls != 1 {
		t.Errorf("corrupt entry should behave as a miss, calls = %d", fetch.calls)
	}

	// The fresh snapshot replaced the corrupt entry.
	if e, err := store.Get("trip-updates"); err != nil || !bytes.Equal(e.Payload, []byte("fresh")) {
		t.Errorf("store after refetch = %+v, %v", e, err)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.Get("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing entry err = %v, want ErrNotFound", err)
	}

	in := Entry{CachedTime: time.Unix(1710000000, 0), Payload: []byte("payload-1")}
	if err := store.Put("vehicle-positions", in); err != nil {
		t.Fatal(err)
	}
	// Overwrite replaces the prior entry.
	in.Payload = []byte("payload-2")
	if err := store.Put("vehicle-positions", in); err != nil {
		t.Fatal(err)
	}

	out, err := store.Get("vehicle-positions")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Payload, []byte("payload-2")) || !out.CachedTime.Equal(in.CachedTime) {
		t.Errorf("round trip = %+v", out)
	}
}
