// Package intervals provides the per-participant index of recording time spans
// used for double-booking detection.
package intervals

import "sort"

// Interval is one recording's time span on a participant's history.
// Times are integer seconds.
type Interval struct {
	StartTime   int64
	EndTime     int64
	RecordingId string
}

// Overlaps reports whether two intervals intersect. Half-open semantics:
// touching endpoints do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

// Index keeps a participant's intervals ordered by start time. It accumulates
// permanently: intervals are never removed or mutated, including those from
// recordings later flagged as fraudulent, so a later check can still collide
// with an already-flagged interval. The zero value is ready to use.
//
// Index is not safe for concurrent use; callers hold the participant's lock.
type Index struct {
	items []Interval
}

// Overlaps returns an interval already in the index that temporally overlaps
// candidate. Intervals in the index were each checked against their neighbors
// at insertion time, so only the entries adjacent to candidate's insertion
// point can overlap it; the successor is inspected before the predecessor and
// at most one conflict is reported per call.
func (ix *Index) Overlaps(candidate Interval) (Interval, bool) {
	idx := ix.search(candidate.StartTime)

	if idx < len(ix.items) && ix.items[idx].Overlaps(candidate) {
		return ix.items[idx], true
	}
	if idx > 0 && ix.items[idx-1].Overlaps(candidate) {
		return ix.items[idx-1], true
	}
	return Interval{}, false
}

// Insert adds iv keeping the index sorted by start time. Insertion is
// unconditional: no uniqueness check and no overlap rejection, even when a
// conflict was just detected for this same interval.
func (ix *Index) Insert(iv Interval) {
	idx := ix.search(iv.StartTime)
	ix.items = append(ix.items, Interval{})
	copy(ix.items[idx+1:], ix.items[idx:])
	ix.items[idx] = iv
}

// Len returns the number of intervals on file.
func (ix *Index) Len() int {
	return len(ix.items)
}

// search returns the insertion point for startTime: the index of the first
// interval whose start is not before it.
func (ix *Index) search(startTime int64) int {
	return sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].StartTime >= startTime
	})
}
