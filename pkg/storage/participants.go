package storage

import (
	"sync"

	"github.com/chris/recording-settlements/pkg/models"
)

// ParticipantStore defines the interface for participant state and locking.
// Accessors perform no implicit locking of their own: callers must hold the
// participant's lock (via ParticipantLock) before mutating a returned record.
type ParticipantStore interface {
	// GetOrCreateParticipant returns the participant, atomically creating a
	// fresh zero-balance record on first reference. Creation is race-free even
	// under concurrent first touch by many callers.
	GetOrCreateParticipant(participantID string) *models.Participant

	// GetParticipant returns the participant, or nil if it was never created.
	GetParticipant(participantID string) *models.Participant

	// ParticipantLock returns the dedicated lock for the participant id,
	// lazily creating it. The same id always yields the same lock object.
	ParticipantLock(participantID string) *sync.Mutex
}
