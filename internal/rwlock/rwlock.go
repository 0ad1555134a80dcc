// Package rwlock implements a reader/writer lock with the semantics
// described for the shared inverted index: any number of readers may hold
// the lock concurrently, xor a single writer may hold it exclusively, and
// releasing a write lock with anything other than the ticket its own Lock
// call produced is a programming error rather than a condition to retry.
//
// Go has no portable notion of "the calling thread" to record as an owner
// the way the original implementation does, so ownership is tracked with an
// explicit ticket returned by Lock and required by Unlock instead.
package rwlock

import (
	"sync"

	"github.com/riverrun/contextual-search/pkg/apperr"
)

// RWLock protects the shared index. It is not re-entrant: a goroutine that
// already holds the read or write lock must not acquire it again.
type RWLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	readers int
	writers int
	owner   *WriteTicket
}

// New returns an unlocked RWLock.
func New() *RWLock {
	l := &RWLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// WriteTicket is the capability produced by a successful write-lock
// acquisition and required to release it.
type WriteTicket struct{ lock *RWLock }

// RLock waits while any writer is active, then registers this goroutine as
// a reader.
func (l *RWLock) RLock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.writers > 0 {
		l.cond.Wait()
	}
	l.readers++
}

// RUnlock releases a previously acquired read lock.
func (l *RWLock) RUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
}

// Lock waits while any reader or writer is active, then grants exclusive
// access, returning the ticket that must be passed to Unlock.
func (l *RWLock) Lock() *WriteTicket {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.readers > 0 || l.writers > 0 {
		l.cond.Wait()
	}
	l.writers = 1
	ticket := &WriteTicket{lock: l}
	l.owner = ticket
	return ticket
}

// Unlock releases the write lock acquired with Lock's returned ticket. It
// returns apperr.ErrLockMisuse, wrapped with context, if ticket is not the
// one currently holding the lock.
func (l *RWLock) Unlock(ticket *WriteTicket) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ticket == nil || l.owner != ticket {
		return apperr.Newf(apperr.ErrLockMisuse, "write unlock by non-owner")
	}
	l.owner = nil
	l.writers = 0
	l.cond.Broadcast()
	return nil
}
