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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test forward traversal visits waypoints in ascending time order
func TestIterator_ForwardTraversal(t *testing.T) {
	traj := makeTestTrajectory(t, 0, 10*time.Second, 20*time.Second)

	it := traj.Begin()
	var visited int
	for !it.IsEnd() {
		sg := mustSegment(t, it)
		ft, err := sg.FinishTime()
		require.NoError(t, err)
		assert.True(t, ft.Equal(baseTime.Add(time.Duration(visited)*10*time.Second)))
		visited++
		it, err = it.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, visited)
}

// Test backward traversal from the end sentinel
func TestIterator_BackwardTraversal(t *testing.T) {
	traj := makeTestTrajectory(t, 0, 10*time.Second)

	last, err := traj.End().Prev()
	require.NoError(t, err)
	sg := mustSegment(t, last)
	ft, err := sg.FinishTime()
	require.NoError(t, err)
	assert.True(t, ft.Equal(baseTime.Add(10*time.Second)))

	first, err := last.Prev()
	require.NoError(t, err)
	assert.True(t, first.Equal(traj.Begin()))
}

// Test stepping past either boundary is a checked failure
func TestIterator_BoundaryTraversalRejected(t *testing.T) {
	traj := makeTestTrajectory(t, 0)

	_, err := traj.End().Next()
	assert.ErrorIs(t, err, ErrInvalidIterator)

	_, err = traj.Begin().Prev()
	assert.ErrorIs(t, err, ErrInvalidIterator)

	// Prev on the end of an empty trajectory has nothing to step to.
	empty := New("test_map")
	_, err = empty.End().Prev()
	assert.ErrorIs(t, err, ErrInvalidIterator)
}

// Test equality and relational comparison within one trajectory
func TestIterator_Comparisons(t *testing.T) {
	traj := makeTestTrajectory(t, 0, 10*time.Second)

	first := traj.Begin()
	second, err := first.Next()
	require.NoError(t, err)
	end := traj.End()

	assert.True(t, first.Equal(traj.Begin()))
	assert.False(t, first.Equal(second))
	assert.True(t, end.Equal(traj.End()))

	c, err := first.Compare(second)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = second.Compare(first)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = first.Compare(traj.Begin())
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	// The end sentinel orders after every waypoint.
	before, err := second.Before(end)
	require.NoError(t, err)
	assert.True(t, before)
	before, err = end.Before(first)
	require.NoError(t, err)
	assert.False(t, before)
}

// Test comparing handles of different trajectories is rejected
func TestIterator_CompareAcrossTrajectories(t *testing.T) {
	a := makeTestTrajectory(t, 0)
	b := makeTestTrajectory(t, 0)

	_, err := a.Begin().Compare(b.Begin())
	assert.ErrorIs(t, err, ErrIteratorMismatch)
	_, err = a.Begin().Before(b.End())
	assert.ErrorIs(t, err, ErrIteratorMismatch)
}

// Test dereferencing the end sentinel is a checked failure
func TestIterator_SegmentOnEnd(t *testing.T) {
	traj := makeTestTrajectory(t, 0)
	_, err := traj.End().Segment()
	assert.ErrorIs(t, err, ErrInvalidIterator)
}

// Test a stale handle is rejected by traversal and comparison
func TestIterator_StaleHandleRejected(t *testing.T) {
	traj := makeTestTrajectory(t, 0, 10*time.Second)
	it := traj.Begin()
	_, err := traj.Erase(it)
	require.NoError(t, err)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrInvalidIterator)
	_, err = it.Segment()
	assert.ErrorIs(t, err, ErrInvalidIterator)
	_, err = it.Compare(traj.Begin())
	assert.ErrorIs(t, err, ErrInvalidIterator)
}

// Test handles survive insertion and erasure of unrelated waypoints
func TestIterator_StableAcrossUnrelatedMutation(t *testing.T) {
	traj := makeTestTrajectory(t, 0, 10*time.Second, 20*time.Second)

	held := traj.Find(baseTime.Add(10 * time.Second))

	// Insert before and after the held waypoint.
	_, err := traj.Insert(baseTime.Add(5*time.Second), makeTestProfile(t), Vector3{}, Vector3{})
	require.NoError(t, err)
	_, err = traj.Insert(baseTime.Add(15*time.Second), makeTestProfile(t), Vector3{}, Vector3{})
	require.NoError(t, err)

	// Erase an unrelated waypoint.
	_, err = traj.Erase(traj.Begin())
	require.NoError(t, err)

	sg := mustSegment(t, held)
	ft, err := sg.FinishTime()
	require.NoError(t, err)
	assert.True(t, ft.Equal(baseTime.Add(10*time.Second)))
	require.NoError(t, CheckConsistency(traj))
}
