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
	"time"
)

// Segment is a value-like handle over one waypoint record owned by a
// trajectory. It is not an independent record: every accessor reads or
// writes the backing store, so two segments obtained for the same waypoint
// observe each other's mutations.
//
// A segment outlives reorderings but not the erasure of its waypoint.
// After erasure every method fails with ErrSegmentErased.
type Segment struct {
	rec *record
}

// guard rejects use of a segment whose backing record has been erased.
func (sg *Segment) guard() error {
	if sg.rec == nil || sg.rec.owner == nil {
		return ErrSegmentErased
	}
	return nil
}

// FinishTime returns the waypoint's finish time, its unique ordering key.
func (sg *Segment) FinishTime() (time.Time, error) {
	if err := sg.guard(); err != nil {
		return time.Time{}, err
	}
	return sg.rec.finishTime, nil
}

// FinishPosition returns the waypoint's finish position.
func (sg *Segment) FinishPosition() (Vector3, error) {
	if err := sg.guard(); err != nil {
		return Vector3{}, err
	}
	return sg.rec.finishPosition, nil
}

// FinishVelocity returns the waypoint's finish velocity.
func (sg *Segment) FinishVelocity() (Vector3, error) {
	if err := sg.guard(); err != nil {
		return Vector3{}, err
	}
	return sg.rec.finishVelocity, nil
}

// Profile returns the waypoint's shared profile reference.
func (sg *Segment) Profile() (*Profile, error) {
	if err := sg.guard(); err != nil {
		return nil, err
	}
	return sg.rec.profile, nil
}

// SetFinishPosition replaces the waypoint's finish position.
func (sg *Segment) SetFinishPosition(position Vector3) error {
	if err := sg.guard(); err != nil {
		return err
	}
	sg.rec.finishPosition = position
	return nil
}

// SetFinishVelocity replaces the waypoint's finish velocity.
func (sg *Segment) SetFinishVelocity(velocity Vector3) error {
	if err := sg.guard(); err != nil {
		return err
	}
	sg.rec.finishVelocity = velocity
	return nil
}

// SetProfile re-points the waypoint at a different shared profile
// instance. This changes which Profile the waypoint aliases; it never
// mutates the previous instance, which other holders keep observing
// unchanged. Returns ErrNilProfile if profile is nil.
func (sg *Segment) SetProfile(profile *Profile) error {
	if err := sg.guard(); err != nil {
		return err
	}
	if profile == nil {
		return ErrNilProfile
	}
	sg.rec.profile = profile
	return nil
}

// SetFinishTime moves the waypoint to a new finish time, repositioning it
// within the owning trajectory so the ascending-order invariant holds. The
// reorder is a single atomic remove-and-reinsert at the container level;
// every other outstanding iterator and segment keeps addressing the same
// logical waypoint it did before.
//
// Returns ErrTimeConflict, mutating nothing, when tm is already the finish
// time of another waypoint in the same trajectory.
func (sg *Segment) SetFinishTime(tm time.Time) error {
	if err := sg.guard(); err != nil {
		return err
	}
	st := sg.rec.owner
	if sg.rec.finishTime.Equal(tm) {
		return nil
	}
	if _, found := st.search(tm); found {
		return ErrTimeConflict
	}

	from := sg.rec.pos
	st.order = slices.Delete(st.order, from, from+1)
	to, _ := st.search(tm)
	sg.rec.finishTime = tm
	st.order = slices.Insert(st.order, to, sg.rec)
	st.reindex(min(from, to))

	return nil
}

// AdjustFinishTimes shifts the finish time of this waypoint and of every
// waypoint after it in time order by the same signed delta. Relative order
// within the shifted block is preserved and no key collisions can occur
// inside it, since all of its keys slide uniformly.
//
// A negative delta that would land this waypoint at or before its
// predecessor is rejected with ErrTimeConflict, mutating nothing.
func (sg *Segment) AdjustFinishTimes(delta time.Duration) error {
	if err := sg.guard(); err != nil {
		return err
	}
	st := sg.rec.owner
	i := sg.rec.pos

	if delta < 0 && i > 0 {
		shifted := sg.rec.finishTime.Add(delta)
		if !st.order[i-1].finishTime.Before(shifted) {
			return ErrTimeConflict
		}
	}

	for _, r := range st.order[i:] {
		r.finishTime = r.finishTime.Add(delta)
	}
	return nil
}
