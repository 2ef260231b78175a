package recordstore

import (
	"context"
	"sync"
)

type entry struct {
	data    []byte
	version int64
}

// Memory is an in-process Store, used when no external backend is configured and in tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	// tombstones remember the last version of deleted keys so versions never repeat.
	tombstones map[string]int64
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}, tombstones: map[string]int64{}}
}

func (m *Memory) Get(_ context.Context, key string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return Snapshot{Version: m.tombstones[key]}, nil
	}
	return Snapshot{Data: append([]byte(nil), e.data...), Version: e.version}, nil
}

func (m *Memory) Commit(_ context.Context, writes ...Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range writes {
		if m.currentVersion(w.Key) != w.Version {
			return ErrVersionConflict
		}
	}
	for _, w := range writes {
		next := m.currentVersion(w.Key) + 1
		if w.Delete {
			delete(m.entries, w.Key)
			m.tombstones[w.Key] = next
			continue
		}
		m.entries[w.Key] = entry{data: append([]byte(nil), w.Data...), version: next}
	}
	return nil
}

// Seed stores raw bytes under key bypassing version checks. It exists so callers can
// import legacy exports (and tests can plant malformed data).
func (m *Memory) Seed(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{data: append([]byte(nil), data...), version: m.currentVersion(key) + 1}
}

func (m *Memory) currentVersion(key string) int64 {
	if e, ok := m.entries[key]; ok {
		return e.version
	}
	return m.tombstones[key]
}
