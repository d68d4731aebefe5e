package vault

import "sync"

// recordLocks serializes lifecycle mutations per record id, so a
// user-initiated restore and a sweeper purge racing on the same record
// always land in a defined terminal state.
type recordLocks struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{entries: map[int64]*lockEntry{}}
}

// acquire blocks until the id's lock is held and returns its release func.
func (l *recordLocks) acquire(id int64) func() {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}
