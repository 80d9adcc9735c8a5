package repository

import "sync"

// ScreeningLocks hands out one mutex per screening so a purchase holds its
// screening exclusively from validation through commit. Locks are never
// removed; the map grows with the calendar, which is bounded.
type ScreeningLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewScreeningLocks() *ScreeningLocks {
	return &ScreeningLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *ScreeningLocks) For(screeningID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[screeningID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[screeningID] = lock
	}
	return lock
}
