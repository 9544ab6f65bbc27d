// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package trajectory

import (
	"slices"
	"sort"
	"time"
)

// Trajectory is a strictly time-ordered, uniquely-keyed collection of
// waypoints describing one agent's planned motion on a named map.
//
// Invariants:
//   - Waypoints are sorted ascending by finish time with no duplicate keys
//   - Begin() equals End() iff the trajectory is empty
//   - Outstanding iterators survive insertion, erasure of other waypoints,
//     and reordering; only erasure of their own target invalidates them
//
// See the package documentation for the ownership and aliasing contracts.
type Trajectory struct {
	s *storage
}

// InsertResult reports the outcome of an Insert call. It is the iterator
// of the waypoint at the requested finish time together with whether this
// call created it.
type InsertResult struct {
	// It addresses the waypoint now occupying the requested finish time:
	// the newly created waypoint when Inserted is true, the pre-existing
	// conflicting waypoint when Inserted is false.
	It Iterator

	// Inserted is false when the finish time was already taken and no
	// mutation occurred.
	Inserted bool
}

// New creates an empty trajectory for the named map.
func New(mapName string) *Trajectory {
	return &Trajectory{s: &storage{mapName: mapName}}
}

// MapName returns the map this trajectory is planned on.
func (t *Trajectory) MapName() string {
	return t.s.mapName
}

// SetMapName renames the map this trajectory is planned on.
func (t *Trajectory) SetMapName(name string) {
	t.s.mapName = name
}

// Size returns the number of waypoints.
func (t *Trajectory) Size() int {
	return len(t.s.order)
}

// StartTime returns the earliest finish time. ok is false when the
// trajectory is empty.
func (t *Trajectory) StartTime() (start time.Time, ok bool) {
	if len(t.s.order) == 0 {
		return time.Time{}, false
	}
	return t.s.order[0].finishTime, true
}

// FinishTime returns the latest finish time. ok is false when the
// trajectory is empty.
func (t *Trajectory) FinishTime() (finish time.Time, ok bool) {
	if len(t.s.order) == 0 {
		return time.Time{}, false
	}
	return t.s.order[len(t.s.order)-1].finishTime, true
}

// Duration returns the span between the first and last finish times. It is
// zero for empty and single-waypoint trajectories.
func (t *Trajectory) Duration() time.Duration {
	n := len(t.s.order)
	if n < 2 {
		return 0
	}
	return t.s.order[n-1].finishTime.Sub(t.s.order[0].finishTime)
}

// Begin returns an iterator addressing the earliest waypoint, or the end
// sentinel when the trajectory is empty.
func (t *Trajectory) Begin() Iterator {
	if len(t.s.order) == 0 {
		return t.End()
	}
	return Iterator{s: t.s, rec: t.s.order[0]}
}

// End returns the end sentinel, the placeholder one past the latest
// waypoint. It is not dereferenceable.
func (t *Trajectory) End() Iterator {
	return Iterator{s: t.s}
}

// Insert adds a waypoint finishing at finishTime with the given shared
// profile, finish position, and finish velocity.
//
// When no waypoint occupies finishTime, the waypoint is created at the
// order-preserving position and the result carries Inserted=true. When the
// key is taken, nothing is mutated and the result carries Inserted=false
// with the iterator of the existing waypoint, so the caller can decide
// whether to edit it instead.
//
// Returns ErrNilProfile if profile is nil.
func (t *Trajectory) Insert(finishTime time.Time, profile *Profile, position, velocity Vector3) (InsertResult, error) {
	if profile == nil {
		return InsertResult{}, ErrNilProfile
	}

	i, found := t.s.search(finishTime)
	if found {
		return InsertResult{It: Iterator{s: t.s, rec: t.s.order[i]}}, nil
	}

	rec := &record{
		finishTime:     finishTime,
		finishPosition: position,
		finishVelocity: velocity,
		profile:        profile,
		owner:          t.s,
	}
	t.s.order = slices.Insert(t.s.order, i, rec)
	t.s.reindex(i)

	return InsertResult{It: Iterator{s: t.s, rec: rec}, Inserted: true}, nil
}

// Find returns the iterator of the waypoint active at query time tm.
//
// A waypoint finishing at T is active for every query time in
// (prevFinish, T], so this is a lower-bound search: the first waypoint
// with finish time >= tm. Query times at or before the first finish time
// return Begin(); query times past the last finish time return End().
// Runs in O(log n).
func (t *Trajectory) Find(tm time.Time) Iterator {
	i, _ := t.s.search(tm)
	if i == len(t.s.order) {
		return t.End()
	}
	return Iterator{s: t.s, rec: t.s.order[i]}
}

// Erase removes the waypoint addressed by it and returns the iterator of
// the waypoint immediately after it in time order, or the end sentinel if
// none. Only it is invalidated; every other outstanding handle keeps
// addressing its waypoint.
//
// Returns ErrInvalidIterator if it is the end sentinel, has already been
// invalidated, or belongs to a different trajectory.
func (t *Trajectory) Erase(it Iterator) (Iterator, error) {
	if it.s != t.s || !it.valid() || it.rec == nil {
		return Iterator{}, ErrInvalidIterator
	}

	i := it.rec.pos
	it.rec.owner = nil
	t.s.order = slices.Delete(t.s.order, i, i+1)
	t.s.reindex(i)

	if i == len(t.s.order) {
		return t.End(), nil
	}
	return Iterator{s: t.s, rec: t.s.order[i]}, nil
}

// EraseRange removes the half-open, time-ordered range [first, last) and
// returns an iterator equivalent to last. An empty range (first == last)
// removes nothing. last may be the end sentinel, in which case every
// waypoint from first through the final one is removed; this case is
// well-defined here by contract.
//
// Returns ErrInvalidIterator when either iterator is stale or foreign, and
// ErrInvalidRange when first is positioned after last.
func (t *Trajectory) EraseRange(first, last Iterator) (Iterator, error) {
	if first.s != t.s || last.s != t.s || !first.valid() || !last.valid() {
		return Iterator{}, ErrInvalidIterator
	}

	lo, hi := first.position(), last.position()
	if lo > hi {
		return Iterator{}, ErrInvalidRange
	}
	if lo == hi {
		return first, nil
	}

	for _, r := range t.s.order[lo:hi] {
		r.owner = nil
	}
	t.s.order = slices.Delete(t.s.order, lo, hi)
	t.s.reindex(lo)

	return last, nil
}

// Copy returns a structurally independent duplicate: fresh waypoint
// records holding the same field values, so erasing or editing one
// trajectory never affects the other. Profile pointers are shared with the
// source — mutating a profile through either trajectory's waypoints is
// visible through both, per the package aliasing contract.
func (t *Trajectory) Copy() *Trajectory {
	ns := &storage{
		mapName: t.s.mapName,
		order:   make([]*record, len(t.s.order)),
	}
	for i, r := range t.s.order {
		nr := *r
		nr.owner = ns
		nr.pos = i
		ns.order[i] = &nr
	}
	return &Trajectory{s: ns}
}

// Move transfers ownership of the backing storage to the returned
// trajectory. The receiver is left empty and valid, equivalent to a newly
// constructed trajectory with an unspecified map name. Iterators issued
// before the move stay valid and now address the moved-to trajectory.
func (t *Trajectory) Move() *Trajectory {
	moved := &Trajectory{s: t.s}
	t.s = &storage{}
	return moved
}

// search returns the lower-bound index for tm in the ordered records: the
// first position whose finish time is >= tm. found reports an exact key
// match.
func (s *storage) search(tm time.Time) (i int, found bool) {
	i = sort.Search(len(s.order), func(k int) bool {
		return !s.order[k].finishTime.Before(tm)
	})
	found = i < len(s.order) && s.order[i].finishTime.Equal(tm)
	return i, found
}

// reindex refreshes the cached index of every record at or after from.
func (s *storage) reindex(from int) {
	for i := from; i < len(s.order); i++ {
		s.order[i].pos = i
	}
}
