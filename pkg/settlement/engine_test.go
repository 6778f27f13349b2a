package settlement_test

import (
	"context"
	"sync"
	"testing"

	"github.com/chris/recording-settlements/pkg/earnings"
	"github.com/chris/recording-settlements/pkg/models"
	"github.com/chris/recording-settlements/pkg/settlement"
	"github.com/chris/recording-settlements/pkg/storage"
	"github.com/chris/recording-settlements/pkg/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*settlement.Engine, *memory.Store) {
	store := memory.New()
	engine := settlement.NewEngine(store, earnings.NewCalculator(0), zerolog.Nop())
	return engine, store
}

func TestCloseRecordingValidation(t *testing.T) {
	t.Run("End Equal To Start", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 100, 100, []string{"alice"})

		assert.ErrorIs(t, err, storage.ErrInvalidSpan)
		assert.Nil(t, store.GetRecording("rec-1"))
		assert.Nil(t, store.GetParticipant("alice"))
	})

	t.Run("End Before Start", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 200, 100, []string{"alice"})

		assert.ErrorIs(t, err, storage.ErrInvalidSpan)
		assert.Nil(t, store.GetRecording("rec-1"))
	})
}

func TestCloseRecordingCredits(t *testing.T) {
	t.Run("Credits Every Participant", func(t *testing.T) {
		engine, store := newTestEngine()

		results, err := engine.CloseRecording(context.Background(), "rec-1", 0, 90*60, []string{"alice", "bob"})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, models.CreditResult{ParticipantId: "alice", AmountCents: 150, Reason: models.CREDITED}, results[0])
		assert.Equal(t, models.CreditResult{ParticipantId: "bob", AmountCents: 150, Reason: models.CREDITED}, results[1])

		assert.Equal(t, int64(150), store.GetParticipant("alice").BalanceCents)
		assert.Equal(t, int64(150), store.GetParticipant("bob").BalanceCents)

		rec := store.GetRecording("rec-1")
		require.NotNil(t, rec)
		assert.Equal(t, models.ENDED, rec.Status)
	})

	t.Run("Duplicate Participant Ids Are Deduplicated", func(t *testing.T) {
		engine, store := newTestEngine()

		results, err := engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice", "bob", "alice"})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "alice", results[0].ParticipantId)
		assert.Equal(t, "bob", results[1].ParticipantId)

		alice := store.GetParticipant("alice")
		assert.Equal(t, int64(100), alice.BalanceCents)
		assert.Len(t, alice.EarningsLog, 1)
	})

	t.Run("Short Recording Credits Zero", func(t *testing.T) {
		engine, store := newTestEngine()

		results, err := engine.CloseRecording(context.Background(), "rec-1", 0, 30, []string{"alice"})

		require.NoError(t, err)
		assert.Equal(t, models.CREDITED, results[0].Reason)
		assert.Equal(t, int64(0), results[0].AmountCents)
		assert.Len(t, store.GetParticipant("alice").EarningsLog, 1)
	})

	t.Run("No Participants", func(t *testing.T) {
		engine, store := newTestEngine()

		results, err := engine.CloseRecording(context.Background(), "rec-1", 0, 3600, nil)

		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Equal(t, models.ENDED, store.GetRecording("rec-1").Status)
	})
}

func TestCloseRecordingIdempotency(t *testing.T) {
	t.Run("Second Close Fails", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice"})
		require.NoError(t, err)

		_, err = engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice"})
		assert.ErrorIs(t, err, storage.ErrAlreadyEnded)

		// No second entry, no second credit.
		alice := store.GetParticipant("alice")
		assert.Equal(t, int64(100), alice.BalanceCents)
		assert.Len(t, alice.EarningsLog, 1)
	})

	t.Run("Concurrent Closers Race For One Success", func(t *testing.T) {
		engine, store := newTestEngine()
		const closers = 8

		errs := make([]error, closers)
		var wg sync.WaitGroup
		for i := 0; i < closers; i++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				_, errs[slot] = engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice"})
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, storage.ErrAlreadyEnded)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, int64(100), store.GetParticipant("alice").BalanceCents)
		assert.Len(t, store.GetParticipant("alice").EarningsLog, 1)
	})
}

func TestCloseRecordingFraud(t *testing.T) {
	t.Run("Overlap Zeroes New And Reverses Prior", func(t *testing.T) {
		engine, store := newTestEngine()

		// rec-1: alice and bob, 90 minutes each.
		_, err := engine.CloseRecording(context.Background(), "rec-1", 0, 5400, []string{"alice", "bob"})
		require.NoError(t, err)

		// rec-2 overlaps rec-1 and shares alice; carol is new.
		results, err := engine.CloseRecording(context.Background(), "rec-2", 3600, 9000, []string{"alice", "carol"})
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, models.CreditResult{ParticipantId: "alice", AmountCents: 0, Reason: models.FRAUD}, results[0])
		assert.Equal(t, models.CreditResult{ParticipantId: "carol", AmountCents: 150, Reason: models.CREDITED}, results[1])

		// Alice's rec-1 credit is clawed back; her rec-2 entry is the zeroed one.
		alice := store.GetParticipant("alice")
		assert.Equal(t, int64(0), alice.BalanceCents)
		require.Len(t, alice.EarningsLog, 2)
		assert.Equal(t, "rec-1", alice.EarningsLog[0].RecordingID)
		assert.True(t, alice.EarningsLog[0].Reversed)
		assert.Equal(t, "rec-2", alice.EarningsLog[1].RecordingID)
		assert.Equal(t, int64(0), alice.EarningsLog[1].AmountCents)
		assert.False(t, alice.EarningsLog[1].Reversed)

		// Both intervals stay on file for alice.
		assert.Equal(t, 2, alice.Intervals.Len())

		// Participants unique to either recording are untouched by the fraud.
		assert.Equal(t, int64(150), store.GetParticipant("bob").BalanceCents)
		assert.Equal(t, int64(150), store.GetParticipant("carol").BalanceCents)
	})

	t.Run("Reversal Clamps Balance At Zero", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 0, 5400, []string{"alice"})
		require.NoError(t, err)

		// Spend most of the credit before the fraud is detected.
		alice := store.GetParticipant("alice")
		lock := store.ParticipantLock("alice")
		lock.Lock()
		alice.BalanceCents -= 120
		lock.Unlock()

		_, err = engine.CloseRecording(context.Background(), "rec-2", 0, 5400, []string{"alice"})
		require.NoError(t, err)

		// 30 - 150 clamps at zero rather than going negative.
		assert.Equal(t, int64(0), store.GetParticipant("alice").BalanceCents)
	})

	t.Run("Sequential Recordings With Touching Endpoints Both Credit", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice"})
		require.NoError(t, err)

		results, err := engine.CloseRecording(context.Background(), "rec-2", 3600, 7200, []string{"alice"})
		require.NoError(t, err)

		assert.Equal(t, models.CREDITED, results[0].Reason)
		assert.Equal(t, int64(200), store.GetParticipant("alice").BalanceCents)
	})

	t.Run("Flagged Intervals Still Collide With Later Closes", func(t *testing.T) {
		engine, store := newTestEngine()

		_, err := engine.CloseRecording(context.Background(), "rec-1", 0, 3600, []string{"alice"})
		require.NoError(t, err)

		// rec-2 collides with rec-1: alice's rec-1 credit is reversed.
		_, err = engine.CloseRecording(context.Background(), "rec-2", 0, 3600, []string{"alice"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), store.GetParticipant("alice").BalanceCents)

		// rec-3 overlaps the already-flagged history and is still caught.
		results, err := engine.CloseRecording(context.Background(), "rec-3", 1800, 5400, []string{"alice"})
		require.NoError(t, err)

		assert.Equal(t, models.FRAUD, results[0].Reason)
		assert.Equal(t, int64(0), store.GetParticipant("alice").BalanceCents)
		assert.Equal(t, 3, store.GetParticipant("alice").Intervals.Len())
	})
}
