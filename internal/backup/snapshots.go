package backup

import (
	"sync"
	"time"
)

// MaxSnapshots bounds the per-user safety-snapshot window; the oldest entry
// is evicted first.
const MaxSnapshots = 10

type Snapshot struct {
	TakenAt  time.Time `json:"takenAt"`
	Reason   string    `json:"reason"`
	Envelope Envelope  `json:"envelope"`
}

// SnapshotStore keeps the pre-restore safety snapshots in memory, a bounded
// window per user.
type SnapshotStore interface {
	Push(userID string, snap Snapshot)
	List(userID string) []Snapshot
	Latest(userID string) (Snapshot, bool)
}

type snapshotStore struct {
	mu   sync.RWMutex
	data map[string][]Snapshot
}

func NewSnapshotStore() SnapshotStore {
	return &snapshotStore{data: make(map[string][]Snapshot)}
}

func (s *snapshotStore) Push(userID string, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := append(s.data[userID], snap)
	if len(window) > MaxSnapshots {
		window = window[len(window)-MaxSnapshots:]
	}
	s.data[userID] = window
}

func (s *snapshotStore) List(userID string) []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := s.data[userID]
	out := make([]Snapshot, len(window))
	copy(out, window)
	return out
}

func (s *snapshotStore) Latest(userID string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := s.data[userID]
	if len(window) == 0 {
		return Snapshot{}, false
	}
	return window[len(window)-1], true
}
