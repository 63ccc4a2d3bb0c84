package service

import (
	"slices"
	"sync"
)

// goalLocks serializes read-modify-write cycles on a goal's progress.
type goalLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newGoalLocks() *goalLocks {
	return &goalLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the locks for all ids in sorted order and returns the
// matching unlock function.
func (l *goalLocks) lock(ids ...string) func() {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (l *goalLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
