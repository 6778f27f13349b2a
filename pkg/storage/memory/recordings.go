package memory

import (
	"sync"

	"github.com/chris/recording-settlements/pkg/models"
)

// GetRecording returns the recording for the id, or nil if never referenced.
func (s *Store) GetRecording(recordingID string) *models.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordings[recordingID]
}

// SetRecording writes the recording keyed by its id. Callers hold the
// recording's lock; the meta-lock here only guards the map itself.
func (s *Store) SetRecording(rec *models.Recording) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordings[rec.Id] = rec
}

// RecordingLock returns the lock dedicated to the recording id, lazily
// creating it under the meta-lock.
func (s *Store) RecordingLock(recordingID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.recordingLocks[recordingID]
	if !ok {
		l = &sync.Mutex{}
		s.recordingLocks[recordingID] = l
	}
	return l
}
