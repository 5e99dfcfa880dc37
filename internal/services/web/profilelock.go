package web

import "sync"

// profileLocks serializes snapshot load-modify-save cycles per profile.
// Entries are dropped once no request holds or waits on them.
type profileLocks struct {
	mu    sync.Mutex
	locks map[string]*profileLock
}

type profileLock struct {
	mu      sync.Mutex
	waiters int
}

func newProfileLocks() *profileLocks {
	return &profileLocks{locks: make(map[string]*profileLock)}
}

// lock blocks until profileID is free and returns the matching unlock.
func (p *profileLocks) lock(profileID string) func() {
	p.mu.Lock()
	entry, ok := p.locks[profileID]
	if !ok {
		entry = &profileLock{}
		p.locks[profileID] = entry
	}
	entry.waiters++
	p.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		p.mu.Lock()
		entry.waiters--
		if entry.waiters == 0 {
			delete(p.locks, profileID)
		}
		p.mu.Unlock()
	}
}

// size reports the number of profiles currently locked or awaited.
func (p *profileLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
