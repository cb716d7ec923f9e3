package service

import (
	"hash/fnv"
	"sync"
)

// sessionLocks serializes read-modify-write cycles on the same quote session
// within this process. Sessions hash onto a fixed set of mutexes so the set
// never grows.
type sessionLocks struct {
	mu [64]sync.Mutex
}

func (l *sessionLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &l.mu[h.Sum32()%uint32(len(l.mu))]
	m.Lock()
	return m.Unlock
}
