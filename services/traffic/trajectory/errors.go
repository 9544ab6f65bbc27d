// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package trajectory provides the time-ordered waypoint timeline that the
// traffic coordination system queries to detect motion conflicts between
// agents.
//
// A Trajectory is an ordered container of waypoint records keyed by finish
// time. Each waypoint carries a finish position, a finish velocity, and a
// shared *Profile holding collision and negotiation metadata. The container
// maintains a strict ascending-by-time order across every mutation,
// including finish-time edits made through outstanding handles.
//
// # Ownership Model
//
// A Trajectory exclusively owns its waypoint records:
//   - Records are created by Insert and destroyed by Erase/EraseRange
//   - Copy produces fully independent records (erasing from a copy never
//     affects the source)
//   - Profiles are NOT owned: many waypoints, in the same or different
//     trajectories, may hold the same *Profile, and mutating that Profile
//     is visible through every holder. This aliasing is a contract, not an
//     accident. A waypoint stores its own copy of the pointer, so
//     reassigning a caller's variable never detaches the waypoint.
//
// # Handle Stability
//
// Iterators and Segments address records by pointer, never by offset.
// Inserting or erasing other waypoints, or reordering after a finish-time
// edit, never invalidates them. Only erasing a handle's own target (or
// destroying the owning trajectory) invalidates it, and every subsequent
// use of an invalidated handle fails with a sentinel error instead of
// corrupting memory.
//
// # Thread Safety
//
// Trajectory is NOT safe for concurrent use. It is a synchronous
// value-semantics container with no internal locking; callers must
// serialize access externally (one lock per trajectory, or a single-writer
// discipline). Shared Profiles referenced from multiple goroutines must be
// serialized separately from trajectory access.
package trajectory

import "errors"

// Sentinel errors for trajectory operations.
var (
	// ErrNilShape is returned when constructing or updating a Profile with
	// a nil shape reference. A Profile's shape reference is never nil.
	ErrNilShape = errors.New("profile shape must not be nil")

	// ErrNilProfile is returned when inserting a waypoint or updating a
	// segment with a nil profile. A waypoint's profile reference is never
	// nil.
	ErrNilProfile = errors.New("waypoint profile must not be nil")

	// ErrInvalidQueueID is returned when switching a Profile to queued
	// agency with an empty or malformed queue identifier. The Profile is
	// left unchanged.
	ErrInvalidQueueID = errors.New("invalid queue identifier")

	// ErrTimeConflict is returned when a finish-time edit would collide
	// with another waypoint's key in the same trajectory. No mutation
	// occurs on rejection.
	ErrTimeConflict = errors.New("finish time already occupied in trajectory")

	// ErrInvalidIterator is returned when dereferencing, advancing, or
	// erasing through an iterator that is the end sentinel, has been
	// invalidated by erasure of its target, or does not belong to the
	// trajectory it is used with.
	ErrInvalidIterator = errors.New("invalid iterator use")

	// ErrIteratorMismatch is returned when comparing iterators that belong
	// to different trajectories. Such comparisons have no defined order.
	ErrIteratorMismatch = errors.New("iterators belong to different trajectories")

	// ErrInvalidRange is returned when a range erase receives a first
	// iterator positioned after its last iterator.
	ErrInvalidRange = errors.New("invalid iterator range")

	// ErrSegmentErased is returned when accessing a segment whose backing
	// waypoint record has been erased from its trajectory.
	ErrSegmentErased = errors.New("segment waypoint has been erased")
)
