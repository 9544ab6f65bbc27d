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

import "time"

// Shape is an opaque collision footprint reference.
//
// The trajectory core stores the reference and hands it back to collision
// logic; it never inspects the value. Callers share Shape values across
// profiles the same way they share Profiles across waypoints: mutation of a
// shared shape is visible through every holder. This follows the
// crypto.PrivateKey convention of a documented-opaque interface type.
type Shape interface{}

// Vector3 is a position or velocity in 3D map coordinates.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Equal reports whether v and o are component-wise identical.
func (v Vector3) Equal(o Vector3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// Agency is a waypoint's negotiation mode.
type Agency int

const (
	// AgencyStrict means no deviation from the planned motion is
	// permitted during negotiation.
	AgencyStrict Agency = iota

	// AgencyAutonomous means the agent is free to replan around
	// conflicts.
	AgencyAutonomous

	// AgencyQueued means the agent must wait its turn in a named queue.
	// A queued profile carries exactly one QueueInfo descriptor.
	AgencyQueued
)

// String returns the string representation of the Agency.
func (a Agency) String() string {
	switch a {
	case AgencyStrict:
		return "strict"
	case AgencyAutonomous:
		return "autonomous"
	case AgencyQueued:
		return "queued"
	default:
		return "unknown"
	}
}

// QueueInfo is an immutable descriptor naming the queue a queued-agency
// profile waits in. It is created when a Profile transitions to queued
// agency and discarded when the Profile leaves it.
type QueueInfo struct {
	queueID string
}

// QueueID returns the queue identifier.
func (q *QueueInfo) QueueID() string {
	return q.queueID
}

// record is the backing store for one waypoint. Records are heap-allocated
// and addressed by pointer so that handles survive reordering of the index
// slice. owner is nil once the record has been erased.
type record struct {
	finishTime     time.Time
	finishPosition Vector3
	finishVelocity Vector3
	profile        *Profile

	owner *storage
	pos   int
}

// storage holds a trajectory's backing state. A move transfers the whole
// storage pointer, which is how outstanding handles follow the records to
// the moved-to trajectory.
type storage struct {
	mapName string

	// order holds the records sorted ascending by finishTime with no
	// duplicate keys. Each record caches its own index in pos.
	order []*record
}
