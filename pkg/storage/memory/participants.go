package memory

import (
	"sync"

	"github.com/chris/recording-settlements/pkg/models"
)

// GetOrCreateParticipant returns the participant for the id, creating a fresh
// zero-balance record under the meta-lock on first reference.
func (s *Store) GetOrCreateParticipant(participantID string) *models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[participantID]
	if !ok {
		p = &models.Participant{Id: participantID}
		s.participants[participantID] = p
	}
	return p
}

// GetParticipant returns the participant for the id, or nil if never created.
func (s *Store) GetParticipant(participantID string) *models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participants[participantID]
}

// ParticipantLock returns the lock dedicated to the participant id. Creation
// happens under the meta-lock so two callers requesting the same key's lock
// for the first time never get two different lock objects.
func (s *Store) ParticipantLock(participantID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.participantLocks[participantID]
	if !ok {
		l = &sync.Mutex{}
		s.participantLocks[participantID] = l
	}
	return l
}
