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
	"fmt"

	"github.com/AleutianAI/fleettraffic/pkg/validation"
)

// Profile is the shared collision and negotiation metadata attached to
// waypoints.
//
// Profiles are deliberately aliased: any number of waypoints, across any
// number of trajectories, may hold the same *Profile, and every mutator
// below is visible through all of them at once. This is not copy-on-write.
// To stop sharing, a holder reassigns its waypoint to a different Profile
// instance; the instance itself is never cloned by this package.
//
// The zero value is not usable; construct with MakeStrict, MakeAutonomous,
// or MakeQueued.
type Profile struct {
	shape  Shape
	agency Agency
	queue  *QueueInfo
}

// MakeStrict constructs a Profile in strict agency holding shape.
// Returns ErrNilShape if shape is nil.
func MakeStrict(shape Shape) (*Profile, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	return &Profile{shape: shape, agency: AgencyStrict}, nil
}

// MakeAutonomous constructs a Profile in autonomous agency holding shape.
// Returns ErrNilShape if shape is nil.
func MakeAutonomous(shape Shape) (*Profile, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	return &Profile{shape: shape, agency: AgencyAutonomous}, nil
}

// MakeQueued constructs a Profile in queued agency holding shape and a
// descriptor for queueID. Returns ErrNilShape if shape is nil and
// ErrInvalidQueueID if queueID is empty or malformed.
func MakeQueued(shape Shape, queueID string) (*Profile, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	if err := validation.ValidateQueueID(queueID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQueueID, err)
	}
	return &Profile{
		shape:  shape,
		agency: AgencyQueued,
		queue:  &QueueInfo{queueID: queueID},
	}, nil
}

// Shape returns the shared shape reference.
func (p *Profile) Shape() Shape {
	return p.shape
}

// Agency returns the current negotiation mode.
func (p *Profile) Agency() Agency {
	return p.agency
}

// QueueInfo returns the queue descriptor, or nil unless the agency is
// AgencyQueued.
func (p *Profile) QueueInfo() *QueueInfo {
	return p.queue
}

// SetShape replaces the shared shape reference without touching the
// agency. Returns ErrNilShape if shape is nil; the Profile is unchanged on
// rejection.
func (p *Profile) SetShape(shape Shape) error {
	if shape == nil {
		return ErrNilShape
	}
	p.shape = shape
	return nil
}

// SetToStrict switches the Profile to strict agency, discarding any queue
// descriptor. Idempotent.
func (p *Profile) SetToStrict() {
	p.agency = AgencyStrict
	p.queue = nil
}

// SetToAutonomous switches the Profile to autonomous agency, discarding
// any queue descriptor. Idempotent.
func (p *Profile) SetToAutonomous() {
	p.agency = AgencyAutonomous
	p.queue = nil
}

// SetToQueued switches the Profile to queued agency holding a fresh
// descriptor built from queueID. Returns ErrInvalidQueueID if queueID is
// empty or malformed; the Profile is unchanged on rejection.
func (p *Profile) SetToQueued(queueID string) error {
	if err := validation.ValidateQueueID(queueID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQueueID, err)
	}
	p.agency = AgencyQueued
	p.queue = &QueueInfo{queueID: queueID}
	return nil
}
