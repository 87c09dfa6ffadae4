// Package kvstore implements the week-scoped repositories on top of the
// abstract key-value store. Values are JSON documents encoded with sonic;
// every mutation runs as a read-modify-write under a per-key mutex so
// concurrent callers cannot lose updates.
package kvstore

import (
	"sync"

	"github.com/puckpicks/puckpicks/internal/domain/week"
)

func weeklyKey(key week.Key) string {
	return "weekly:" + string(key)
}

func scheduleKey(key week.Key) string {
	return "schedule:" + string(key)
}

// keyedMutex serializes read-modify-write cycles per storage key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (m *keyedMutex) lock(key string) func() {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*sync.Mutex)
	}
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
