package session

import "sync"

// attemptLocks serializes steps per attempt id. Different attempts proceed in
// parallel; two submissions against the same attempt queue behind one mutex,
// which is held across the collaborator call so interleaved merges cannot
// happen. Entries are reference-counted and removed once unused.
type attemptLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAttemptLocks() *attemptLocks {
	return &attemptLocks{locks: make(map[string]*lockEntry)}
}

// Acquire blocks until the lock for id is held and returns the release func.
func (l *attemptLocks) Acquire(id string) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
