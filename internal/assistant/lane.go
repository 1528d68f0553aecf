package assistant

import "sync"

// laneLock provides per-session serialization: two turns of the same
// session never interleave, while turns for different sessions run
// concurrently.
//
// A global mutex protects the lane map; each lane has its own mutex for
// intra-session serialization. The global mutex is held only briefly to
// look up or create the per-session mutex.
type laneLock struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

// lane stores per-session synchronization metadata. refs counts goroutines
// that acquired (or are waiting on) this lane so cleanup never removes a
// lane in use.
type lane struct {
	mu   sync.Mutex
	refs int
}

func newLaneLock() *laneLock {
	return &laneLock{lanes: make(map[string]*lane)}
}

// acquire gets or creates the per-session mutex and locks it.
// The caller must call release with the same ID when done.
func (l *laneLock) acquire(id string) {
	l.mu.Lock()
	ln, ok := l.lanes[id]
	if !ok {
		ln = &lane{}
		l.lanes[id] = ln
	}
	ln.refs++
	l.mu.Unlock()

	// Lock outside the global mutex so other sessions are not blocked.
	ln.mu.Lock()
}

// release unlocks the per-session mutex for the given ID and drops the
// lane entry once nothing references it.
func (l *laneLock) release(id string) {
	l.mu.Lock()
	ln, ok := l.lanes[id]
	if !ok {
		l.mu.Unlock()
		return
	}
	ln.refs--
	if ln.refs == 0 {
		delete(l.lanes, id)
	}
	l.mu.Unlock()

	ln.mu.Unlock()
}
