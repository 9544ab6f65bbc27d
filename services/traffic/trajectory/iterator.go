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

// Iterator is a stable cursor into one trajectory's waypoint sequence.
//
// An iterator stays valid until the waypoint it addresses is erased;
// inserting, erasing, or reordering other waypoints re-points it to the
// same logical waypoint regardless of where the record sits internally.
// After a move, iterators follow the backing storage and address the
// moved-to trajectory.
//
// Every operation below checks the handle first: using the end sentinel or
// an invalidated iterator yields a sentinel error, never memory
// corruption.
type Iterator struct {
	s   *storage
	rec *record // nil marks the end sentinel
}

// IsEnd reports whether the iterator is the end sentinel.
func (it Iterator) IsEnd() bool {
	return it.rec == nil
}

// valid reports whether the handle may still be used: a sentinel belongs
// to live storage, or a record that has not been erased from it.
func (it Iterator) valid() bool {
	if it.s == nil {
		return false
	}
	return it.rec == nil || it.rec.owner == it.s
}

// position returns the iterator's place in time order, with the end
// sentinel one past the final waypoint.
func (it Iterator) position() int {
	if it.rec == nil {
		return len(it.s.order)
	}
	return it.rec.pos
}

// Next returns the iterator one position later in time order. Advancing
// past the end sentinel is rejected with ErrInvalidIterator.
func (it Iterator) Next() (Iterator, error) {
	if !it.valid() || it.rec == nil {
		return Iterator{}, ErrInvalidIterator
	}
	i := it.rec.pos + 1
	if i == len(it.s.order) {
		return Iterator{s: it.s}, nil
	}
	return Iterator{s: it.s, rec: it.s.order[i]}, nil
}

// Prev returns the iterator one position earlier in time order. The end
// sentinel steps back to the final waypoint. Stepping before the first
// waypoint is rejected with ErrInvalidIterator.
func (it Iterator) Prev() (Iterator, error) {
	if !it.valid() {
		return Iterator{}, ErrInvalidIterator
	}
	i := it.position() - 1
	if i < 0 {
		return Iterator{}, ErrInvalidIterator
	}
	return Iterator{s: it.s, rec: it.s.order[i]}, nil
}

// Segment dereferences the iterator, yielding mutable access to the
// addressed waypoint. The end sentinel and invalidated handles are
// rejected with ErrInvalidIterator.
func (it Iterator) Segment() (*Segment, error) {
	if !it.valid() || it.rec == nil {
		return nil, ErrInvalidIterator
	}
	return &Segment{rec: it.rec}, nil
}

// Equal reports whether both iterators address the same waypoint of the
// same trajectory (or are both that trajectory's end sentinel).
func (it Iterator) Equal(other Iterator) bool {
	return it.s == other.s && it.rec == other.rec
}

// Compare orders two iterators of the same trajectory by the time order of
// the waypoints they address, returning -1, 0, or +1 with the end sentinel
// greatest. Iterators of different trajectories have no defined order and
// yield ErrIteratorMismatch; stale handles yield ErrInvalidIterator.
func (it Iterator) Compare(other Iterator) (int, error) {
	if !it.valid() || !other.valid() {
		return 0, ErrInvalidIterator
	}
	if it.s != other.s {
		return 0, ErrIteratorMismatch
	}
	a, b := it.position(), other.position()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// Before reports whether it addresses an earlier waypoint than other.
// Carries the same restrictions as Compare.
func (it Iterator) Before(other Iterator) (bool, error) {
	c, err := it.Compare(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}
