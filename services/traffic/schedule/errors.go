// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package schedule tracks the trajectories of active fleet participants.
//
// A Registry maps participant identity to the trajectory that participant
// has committed to. Registration hands the trajectory over to the registry
// (move semantics); callers that need to keep a usable copy should call
// Trajectory.Copy before registering.
//
// # Ownership Model
//
// The Registry owns the trajectories registered with it. Participant
// handles returned from Register and Get remain valid until Unregister.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Participant getters are read-only
// after construction. Trajectories obtained through a Participant are NOT
// synchronized; callers that mutate them concurrently must provide their
// own locking.
package schedule

import "errors"

// ErrNilTrajectory indicates a registration was attempted with a nil
// trajectory.
var ErrNilTrajectory = errors.New("trajectory is nil")

// ErrEmptyTrajectory indicates a registration was attempted with a
// trajectory holding no waypoints.
var ErrEmptyTrajectory = errors.New("trajectory has no waypoints")

// ErrInvalidName indicates a participant name failed validation.
var ErrInvalidName = errors.New("invalid participant name")

// ErrUnknownParticipant indicates a lookup or unregistration referenced a
// participant ID not present in the registry.
var ErrUnknownParticipant = errors.New("unknown participant")
