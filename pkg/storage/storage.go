package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations and owns no business logic;
// settlement and balance rules live with the components that depend on it.
type Storage interface {
	ParticipantStore
	RecordingStore

	// Reset clears all state. It exists for test isolation only and is not
	// part of steady-state operation.
	Reset()
}
