package index

import "github.com/riverrun/contextual-search/internal/rwlock"

// ThreadSafeIndex wraps Index with the reader/writer lock: every mutation
// acquires the write lock for its full duration, and every read operation
// acquires the read lock for its full duration. Returned collections are
// always snapshots, never live aliases into the locked state.
type ThreadSafeIndex struct {
	core *Index
	lock *rwlock.RWLock
}

// NewThreadSafe returns an empty, lockable inverted index.
func NewThreadSafe() *ThreadSafeIndex {
	return &ThreadSafeIndex{core: New(), lock: rwlock.New()}
}

// Add locks for write and inserts a single (term, location, position).
func (t *ThreadSafeIndex) Add(term, location string, position int) error {
	ticket := t.lock.Lock()
	defer mustUnlock(t.lock, ticket)
	t.core.Add(term, location, position)
	return nil
}

// AddAll locks for write and merges other into the shared index.
func (t *ThreadSafeIndex) AddAll(other *Index) error {
	ticket := t.lock.Lock()
	defer mustUnlock(t.lock, ticket)
	t.core.AddAll(other)
	return nil
}

func (t *ThreadSafeIndex) HasTerm(term string) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.HasTerm(term)
}

func (t *ThreadSafeIndex) HasLocation(term, location string) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.HasLocation(term, location)
}

func (t *ThreadSafeIndex) HasPosition(term, location string, position int) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.HasPosition(term, location, position)
}

func (t *ThreadSafeIndex) NumTerms() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.NumTerms()
}

func (t *ThreadSafeIndex) NumLocations(term string) int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.NumLocations(term)
}

func (t *ThreadSafeIndex) NumPositions(term, location string) int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.NumPositions(term, location)
}

func (t *ThreadSafeIndex) Terms() []string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.Terms()
}

func (t *ThreadSafeIndex) Locations(term string) []string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.Locations(term)
}

func (t *ThreadSafeIndex) Positions(term, location string) []int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.Positions(term, location)
}

func (t *ThreadSafeIndex) LocationCounts() map[string]int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.LocationCounts()
}

func (t *ThreadSafeIndex) Search(query []string, exact bool) []SearchResult {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.Search(query, exact)
}

func (t *ThreadSafeIndex) ExactSearch(query []string) []SearchResult {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.ExactSearch(query)
}

func (t *ThreadSafeIndex) PartialSearch(query []string) []SearchResult {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.core.PartialSearch(query)
}

// Snapshot returns a read-locked deep copy of the underlying index,
// suitable for serialization outside the lock.
func (t *ThreadSafeIndex) Snapshot() *Index {
	t.lock.RLock()
	defer t.lock.RUnlock()
	snap := New()
	snap.AddAll(t.core)
	return snap
}

// mustUnlock releases a write ticket acquired from the same lock. A
// lock-misuse error here can only indicate a bug in this package itself,
// since every Lock call above is paired with exactly one Unlock of its own
// ticket; it is not a condition callers of ThreadSafeIndex can trigger.
func mustUnlock(l *rwlock.RWLock, ticket *rwlock.WriteTicket) {
	if err := l.Unlock(ticket); err != nil {
		panic(err)
	}
}
