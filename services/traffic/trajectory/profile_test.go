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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test strict construction carries the shape and no queue descriptor
func TestMakeStrict_Valid(t *testing.T) {
	shape := &boxShape{width: 1, height: 1}
	p, err := MakeStrict(shape)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Same(t, shape, p.Shape())
	assert.Equal(t, AgencyStrict, p.Agency())
	assert.Nil(t, p.QueueInfo())
}

// Test autonomous construction carries the shape and no queue descriptor
func TestMakeAutonomous_Valid(t *testing.T) {
	shape := &circleShape{radius: 1}
	p, err := MakeAutonomous(shape)
	require.NoError(t, err)

	assert.Same(t, shape, p.Shape())
	assert.Equal(t, AgencyAutonomous, p.Agency())
	assert.Nil(t, p.QueueInfo())
}

// Test queued construction carries exactly one descriptor with the queue id
func TestMakeQueued_Valid(t *testing.T) {
	shape := &circleShape{radius: 1}
	p, err := MakeQueued(shape, "5")
	require.NoError(t, err)

	assert.Same(t, shape, p.Shape())
	assert.Equal(t, AgencyQueued, p.Agency())
	require.NotNil(t, p.QueueInfo())
	assert.Equal(t, "5", p.QueueInfo().QueueID())
}

// Test all constructors reject a nil shape
func TestMakeProfile_NilShape(t *testing.T) {
	_, err := MakeStrict(nil)
	assert.ErrorIs(t, err, ErrNilShape)

	_, err = MakeAutonomous(nil)
	assert.ErrorIs(t, err, ErrNilShape)

	_, err = MakeQueued(nil, "5")
	assert.ErrorIs(t, err, ErrNilShape)
}

// Test queued construction rejects absent or malformed queue identifiers
func TestMakeQueued_InvalidQueueID(t *testing.T) {
	shape := &boxShape{width: 1, height: 1}

	for _, id := range []string{"", " ", "queue id with spaces", "\t"} {
		_, err := MakeQueued(shape, id)
		assert.ErrorIs(t, err, ErrInvalidQueueID, "queue id %q", id)
	}
}

// Test agency transitions via the set_to mutators, discarding descriptors
func TestProfile_AgencyTransitions(t *testing.T) {
	p, err := MakeStrict(&boxShape{width: 1, height: 1})
	require.NoError(t, err)

	p.SetToAutonomous()
	assert.Equal(t, AgencyAutonomous, p.Agency())
	assert.Nil(t, p.QueueInfo())

	require.NoError(t, p.SetToQueued("2"))
	assert.Equal(t, AgencyQueued, p.Agency())
	require.NotNil(t, p.QueueInfo())
	assert.Equal(t, "2", p.QueueInfo().QueueID())

	p.SetToStrict()
	assert.Equal(t, AgencyStrict, p.Agency())
	assert.Nil(t, p.QueueInfo())

	// Idempotent
	p.SetToStrict()
	assert.Equal(t, AgencyStrict, p.Agency())
}

// Test a rejected queued transition leaves the profile unchanged
func TestProfile_SetToQueued_InvalidLeavesUnchanged(t *testing.T) {
	p, err := MakeQueued(&boxShape{width: 1, height: 1}, "3")
	require.NoError(t, err)

	err = p.SetToQueued("")
	assert.ErrorIs(t, err, ErrInvalidQueueID)
	assert.Equal(t, AgencyQueued, p.Agency())
	assert.Equal(t, "3", p.QueueInfo().QueueID())
}

// Test replacing the shape reference without touching agency
func TestProfile_SetShape(t *testing.T) {
	oldShape := &boxShape{width: 1, height: 1}
	newShape := &boxShape{width: 2, height: 2}

	p, err := MakeStrict(oldShape)
	require.NoError(t, err)

	require.NoError(t, p.SetShape(newShape))
	assert.Same(t, newShape, p.Shape())
	assert.Equal(t, AgencyStrict, p.Agency())

	assert.ErrorIs(t, p.SetShape(nil), ErrNilShape)
	assert.Same(t, newShape, p.Shape())
}

// Test mutation through one alias is visible through every other alias
func TestProfile_SharedMutationVisibleThroughAliases(t *testing.T) {
	p, err := MakeStrict(&boxShape{width: 1, height: 1})
	require.NoError(t, err)

	alias := p
	alias.SetToAutonomous()

	assert.Equal(t, AgencyAutonomous, p.Agency())
	assert.Equal(t, AgencyAutonomous, alias.Agency())
}

// Test the profile keeps its shape when the call-site variable is re-pointed
func TestProfile_ShapeSurvivesCallSiteReassignment(t *testing.T) {
	shape := &boxShape{width: 1, height: 1}
	original := shape

	p, err := MakeStrict(shape)
	require.NoError(t, err)

	shape = &boxShape{width: 2, height: 2}

	assert.NotSame(t, shape, p.Shape())
	assert.Same(t, original, p.Shape())
}
