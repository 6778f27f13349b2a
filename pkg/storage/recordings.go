package storage

import (
	"sync"

	"github.com/chris/recording-settlements/pkg/models"
)

// RecordingStore defines the interface for recording state and locking.
// As with participants, callers must hold the recording's lock before reading
// or writing a recording during closure.
type RecordingStore interface {
	// GetRecording returns the recording, or nil if it was never referenced.
	GetRecording(recordingID string) *models.Recording

	// SetRecording writes the recording keyed by its id.
	SetRecording(rec *models.Recording)

	// RecordingLock returns the dedicated lock for the recording id, lazily
	// creating it. The same id always yields the same lock object.
	RecordingLock(recordingID string) *sync.Mutex
}
