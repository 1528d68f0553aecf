package assistant

import (
	"sync"
	"testing"
	"time"
)

// fakeTime provides an injectable clock for deterministic testing.
type fakeTime struct {
	mu      sync.Mutex
	current time.Time
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeTime) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
}

func newTestStore() (*InMemorySessionStore, *fakeTime) {
	s := NewInMemorySessionStore()
	ft := &fakeTime{current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.now = ft.Now
	return s, ft
}

func TestStore_GetOrCreate_SeedsSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()

	sess, created := store.GetOrCreate("s1")
	if !created {
		t.Fatal("expected created=true on first call")
	}
	if sess.Phase != PhaseGathering {
		t.Errorf("Phase = %q, want gathering", sess.Phase)
	}
	if len(sess.Primary) != 2 {
		t.Fatalf("Primary len = %d, want 2 (system + greeting)", len(sess.Primary))
	}
	if len(sess.Transcript) != 1 || sess.Transcript[0].Speaker != SpeakerBot {
		t.Errorf("Transcript = %+v, want single bot greeting", sess.Transcript)
	}
	if sess.Requirements != nil || sess.Recommendations != nil {
		t.Error("fresh session must carry no profile or recommendations")
	}

	sess2, created := store.GetOrCreate("s1")
	if created || sess2 != sess {
		t.Error("second GetOrCreate must return the same session")
	}
}

func TestStore_Reset_Idempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	sess, _ := store.GetOrCreate("s1")

	sess.Phase = PhasePostRecommendation
	sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerUser, Text: "hi"})

	store.Reset("s1")
	after1 := *store.Get("s1")

	store.Reset("s1")
	after2 := *store.Get("s1")

	if after1.Phase != PhaseGathering || len(after1.Transcript) != 1 {
		t.Errorf("reset session = phase %q, %d entries; want gathering with 1 entry",
			after1.Phase, len(after1.Transcript))
	}
	if after2.Phase != after1.Phase || len(after2.Transcript) != len(after1.Transcript) ||
		len(after2.Primary) != len(after1.Primary) {
		t.Error("double reset differs from single reset")
	}
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	store, ft := newTestStore()
	store.GetOrCreate("old")

	ft.Advance(time.Hour)
	store.GetOrCreate("fresh")

	pruned := store.Prune(30 * time.Minute)
	if pruned != 1 {
		t.Errorf("Prune = %d, want 1", pruned)
	}
	if store.Get("old") != nil {
		t.Error("idle session survived prune")
	}
	if store.Get("fresh") == nil {
		t.Error("fresh session was pruned")
	}
}

func TestStore_MaxSessions(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	store.SetMaxSessions(1)

	if sess, _ := store.GetOrCreate("a"); sess == nil {
		t.Fatal("first session refused")
	}
	if sess, created := store.GetOrCreate("b"); sess != nil || created {
		t.Error("session over the limit was created")
	}
	// Existing sessions are still reachable at the limit.
	if sess, _ := store.GetOrCreate("a"); sess == nil {
		t.Error("existing session refused at limit")
	}
}

func TestNewSessionID(t *testing.T) {
	t.Parallel()

	id, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("ID length = %d, want 32 hex chars", len(id))
	}
}
