package progress

import (
	"sync"
	"testing"
)

// fakeLocal is an in-memory LocalSource for store tests.
type fakeLocal struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{data: make(map[string]string)}
}

func (f *fakeLocal) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeLocal) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

// fakeRemote is an in-memory RemoteSource for store tests.
type fakeRemote struct {
	mu   sync.Mutex
	data map[[2]uint]Record
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: make(map[[2]uint]Record)}
}

func (f *fakeRemote) Get(userID, courseID uint) (Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.data[[2]uint{userID, courseID}]
	return rec, ok, nil
}

func (f *fakeRemote) Upsert(userID, courseID uint, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[[2]uint{userID, courseID}] = rec
	return nil
}

func recordWith(moduleID string) Record {
	rec := EmptyRecord()
	rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{ModuleID: moduleID, VideoCompleted: true})
	return rec
}

func TestReconcileRemoteWins(t *testing.T) {
	remote := recordWith("r")
	local := recordWith("l")

	got, migrate := Reconcile(remote, true, local, true)
	if got.Find("r") == nil {
		t.Fatal("remote record did not win")
	}
	if migrate {
		t.Fatal("migration flagged when remote has data")
	}
}

func TestReconcileLocalFallback(t *testing.T) {
	local := recordWith("l")

	got, migrate := Reconcile(EmptyRecord(), false, local, true)
	if got.Find("l") == nil {
		t.Fatal("local record not used")
	}
	if !migrate {
		t.Fatal("migration not flagged")
	}

	// An empty remote row also falls back to local
	got, migrate = Reconcile(EmptyRecord(), true, local, true)
	if got.Find("l") == nil || !migrate {
		t.Fatal("empty remote should not beat non-empty local")
	}
}

func TestReconcileBothEmpty(t *testing.T) {
	got, migrate := Reconcile(EmptyRecord(), false, EmptyRecord(), false)
	if !got.IsEmpty() || migrate {
		t.Fatalf("got %+v migrate=%v, want empty record", got, migrate)
	}
}

func TestLoadMigratesCacheToRemote(t *testing.T) {
	local := newFakeLocal()
	remote := newFakeRemote()
	store := NewStore(local, remote)

	actor := Actor{UserID: 7, Role: RoleStudent}
	cached := recordWith("1")
	payload, _ := cached.Encode()
	local.Set(CacheKey(7, 3), string(payload))

	got := store.Load(actor, 3)
	if got.Find("1") == nil {
		t.Fatal("cached record not returned")
	}

	store.Flush()
	migrated, ok, _ := remote.Get(7, 3)
	if !ok || migrated.Find("1") == nil {
		t.Fatal("cached record not migrated to remote")
	}
}

func TestLoadMalformedCacheCountsAsAbsent(t *testing.T) {
	local := newFakeLocal()
	remote := newFakeRemote()
	store := NewStore(local, remote)

	local.Set(CacheKey(1, 1), "{not json")

	got := store.Load(Actor{UserID: 1, Role: RoleStudent}, 1)
	if !got.IsEmpty() {
		t.Fatalf("got %+v, want empty record", got)
	}

	store.Flush()
	if _, ok, _ := remote.Get(1, 1); ok {
		t.Fatal("malformed cache was migrated")
	}
}

func TestSaveWritesBothSources(t *testing.T) {
	local := newFakeLocal()
	remote := newFakeRemote()
	store := NewStore(local, remote)

	actor := Actor{UserID: 2, Role: RoleStudent}
	rec := recordWith("5")
	store.Save(actor, 9, rec)

	// Cache write is synchronous
	raw, _ := local.Get(CacheKey(2, 9))
	if raw == "" {
		t.Fatal("cache not written")
	}
	cached, err := DecodeRecord([]byte(raw))
	if err != nil || cached.Find("5") == nil {
		t.Fatalf("cached payload wrong: %v", err)
	}

	store.Flush()
	persisted, ok, _ := remote.Get(2, 9)
	if !ok || persisted.Find("5") == nil {
		t.Fatal("remote not written after flush")
	}
}

func TestSaveThenLoadSameSession(t *testing.T) {
	local := newFakeLocal()
	remote := newFakeRemote()
	store := NewStore(local, remote)

	actor := Actor{UserID: 4, Role: RoleStudent}
	rec := recordWith("2")
	store.Save(actor, 1, rec)
	store.Flush()

	got := store.Load(actor, 1)
	if got.Find("2") == nil {
		t.Fatal("saved record not loadable")
	}
}

func TestCacheKeyFormat(t *testing.T) {
	if got := CacheKey(12, 34); got != "course_progress_12_34" {
		t.Fatalf("key = %q", got)
	}
}
