package services

import "sync"

// RoomLocker hands out one mutex per room id. Entries are reference counted
// and dropped once no caller holds or waits for them, so distinct rooms never
// contend and idle rooms cost nothing.
type RoomLocker struct {
	mu    sync.Mutex
	locks map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func NewRoomLocker() *RoomLocker {
	return &RoomLocker{locks: make(map[string]*roomLock)}
}

// Lock blocks until roomID's mutex is held and returns the matching unlock.
func (l *RoomLocker) Lock(roomID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[roomID]
	if !ok {
		lock = &roomLock{}
		l.locks[roomID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}

func (l *RoomLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
