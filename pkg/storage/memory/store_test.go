package memory_test

import (
	"sync"
	"testing"

	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateParticipant(t *testing.T) {
	t.Run("Creates Zero Balance Participant", func(t *testing.T) {
		store := memory.New()

		p := store.GetOrCreateParticipant("user-a")

		assert.Equal(t, "user-a", p.Id)
		assert.Equal(t, int64(0), p.BalanceCents)
		assert.Empty(t, p.EarningsLog)
	})

	t.Run("Returns Existing Participant", func(t *testing.T) {
		store := memory.New()
		first := store.GetOrCreateParticipant("user-a")
		first.BalanceCents = 500

		second := store.GetOrCreateParticipant("user-a")

		assert.Same(t, first, second)
	})

	t.Run("Concurrent First Touch Creates Exactly One Record", func(t *testing.T) {
		store := memory.New()
		const workers = 32

		results := make([]*models.Participant, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				results[slot] = store.GetOrCreateParticipant("user-a")
			}(i)
		}
		wg.Wait()

		for _, p := range results {
			assert.Same(t, results[0], p)
		}
	})
}

func TestGetParticipant(t *testing.T) {
	store := memory.New()

	assert.Nil(t, store.GetParticipant("unknown"))

	store.GetOrCreateParticipant("user-a")
	assert.NotNil(t, store.GetParticipant("user-a"))
}

func TestLockRegistries(t *testing.T) {
	t.Run("Same Key Yields Same Lock", func(t *testing.T) {
		store := memory.New()

		assert.Same(t, store.ParticipantLock("user-a"), store.ParticipantLock("user-a"))
		assert.Same(t, store.RecordingLock("rec-1"), store.RecordingLock("rec-1"))
	})

	t.Run("Different Keys Yield Different Locks", func(t *testing.T) {
		store := memory.New()

		assert.NotSame(t, store.ParticipantLock("user-a"), store.ParticipantLock("user-b"))
		assert.NotSame(t, store.RecordingLock("rec-1"), store.RecordingLock("rec-2"))
	})

	t.Run("Concurrent First Request Yields One Lock Object", func(t *testing.T) {
		store := memory.New()
		const workers = 32

		locks := make([]*sync.Mutex, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				locks[slot] = store.ParticipantLock("user-a")
			}(i)
		}
		wg.Wait()

		for _, l := range locks {
			assert.Same(t, locks[0], l)
		}
	})
}

func TestRecordings(t *testing.T) {
	store := memory.New()

	assert.Nil(t, store.GetRecording("rec-1"))

	store.SetRecording(&models.Recording{Id: "rec-1", StartTime: 0, EndTime: 60, Status: models.ENDED})

	rec := store.GetRecording("rec-1")
	assert.NotNil(t, rec)
	assert.Equal(t, models.ENDED, rec.Status)
}

func TestReset(t *testing.T) {
	store := memory.New()
	store.GetOrCreateParticipant("user-a")
	store.SetRecording(&models.Recording{Id: "rec-1", Status: models.ENDED})
	firstLock := store.ParticipantLock("user-a")

	store.Reset()

	assert.Nil(t, store.GetParticipant("user-a"))
	assert.Nil(t, store.GetRecording("rec-1"))
	assert.NotSame(t, firstLock, store.ParticipantLock("user-a"))
}
