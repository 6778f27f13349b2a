// Package memory implements the Storage interface entirely in process memory.
// Nothing survives a restart; durability is out of scope for this service.
package memory

import (
	"sync"

	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/storage"
)

// Store holds all participant and recording state plus the per-key lock
// registries. A single meta-lock guards lazy creation in every map, held only
// for the instant of a lookup or insert, never across business logic. Lock
// registries grow monotonically: locks are never removed while the process runs.
type Store struct {
	mu sync.Mutex // meta-lock

	participants     map[string]*models.Participant
	recordings       map[string]*models.Recording
	participantLocks map[string]*sync.Mutex
	recordingLocks   map[string]*sync.Mutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		participants:     make(map[string]*models.Participant),
		recordings:       make(map[string]*models.Recording),
		participantLocks: make(map[string]*sync.Mutex),
		recordingLocks:   make(map[string]*sync.Mutex),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// Reset clears all state. Test isolation only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants = make(map[string]*models.Participant)
	s.recordings = make(map[string]*models.Recording)
	s.participantLocks = make(map[string]*sync.Mutex)
	s.recordingLocks = make(map[string]*sync.Mutex)
}
