package store

import "sync"

// titleLocks hands out one RWMutex per title, dropping it once no caller
// holds or waits on it.
type titleLocks struct {
	mu    sync.Mutex
	locks map[string]*titleLock
}

type titleLock struct {
	sync.RWMutex
	refs int
}

func newTitleLocks() *titleLocks {
	return &titleLocks{locks: make(map[string]*titleLock)}
}

func (l *titleLocks) acquire(title string) *titleLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl, ok := l.locks[title]
	if !ok {
		tl = &titleLock{}
		l.locks[title] = tl
	}
	tl.refs++
	return tl
}

func (l *titleLocks) release(title string, tl *titleLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl.refs--
	if tl.refs == 0 {
		delete(l.locks, title)
	}
}

// Lock takes the exclusive lock for title and returns its unlock func.
func (l *titleLocks) Lock(title string) func() {
	tl := l.acquire(title)
	tl.Lock()
	return func() {
		tl.Unlock()
		l.release(title, tl)
	}
}

// RLock takes the shared lock for title and returns its unlock func.
func (l *titleLocks) RLock(title string) func() {
	tl := l.acquire(title)
	tl.RLock()
	return func() {
		tl.RUnlock()
		l.release(title, tl)
	}
}

func (l *titleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
