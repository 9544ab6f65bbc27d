// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AleutianAI/fleettraffic/services/traffic/trajectory"
)

type discShape struct {
	Radius float64
}

var scheduleBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// makeTrajectory builds a trajectory with waypoints at the given second
// offsets from scheduleBase.
func makeTrajectory(t *testing.T, mapName string, offsets ...int) *trajectory.Trajectory {
	t.Helper()

	profile, err := trajectory.MakeStrict(discShape{Radius: 0.5})
	require.NoError(t, err)

	traj := trajectory.New(mapName)
	for _, off := range offsets {
		pos := trajectory.Vector3{X: float64(off)}
		res, err := traj.Insert(scheduleBase.Add(time.Duration(off)*time.Second), profile, pos, trajectory.Vector3{})
		require.NoError(t, err)
		require.True(t, res.Inserted)
	}
	return traj
}

// Verify registration assigns an ID and takes ownership of the trajectory.
func TestRegister(t *testing.T) {
	reg := NewRegistry(nil)
	traj := makeTrajectory(t, "warehouse_l2", 0, 10, 20)

	p, err := reg.Register(context.Background(), "delivery_bot", traj)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, "delivery_bot", p.Name())
	assert.Equal(t, 3, p.Trajectory().Size())
	assert.Equal(t, "warehouse_l2", p.Trajectory().MapName())
	assert.Equal(t, 1, reg.Len())

	// Registration drains the caller's handle.
	assert.Equal(t, 0, traj.Size())
}

// Verify invalid registrations are rejected with sentinel errors.
func TestRegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	_, err := reg.Register(ctx, "", makeTrajectory(t, "m", 0))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = reg.Register(ctx, "bad\tname", makeTrajectory(t, "m", 0))
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = reg.Register(ctx, "bot", nil)
	assert.ErrorIs(t, err, ErrNilTrajectory)

	_, err = reg.Register(ctx, "bot", trajectory.New("m"))
	assert.ErrorIs(t, err, ErrEmptyTrajectory)

	assert.Equal(t, 0, reg.Len())
}

// Verify Get and Unregister round-trip, and unknown IDs are rejected.
func TestUnregister(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	p, err := reg.Register(ctx, "bot_a", makeTrajectory(t, "m", 0, 5))
	require.NoError(t, err)

	got, ok := reg.Get(p.ID())
	require.True(t, ok)
	assert.Same(t, p, got)

	require.NoError(t, reg.Unregister(ctx, p.ID()))
	assert.Equal(t, 0, reg.Len())

	_, ok = reg.Get(p.ID())
	assert.False(t, ok)

	err = reg.Unregister(ctx, p.ID())
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

// Verify Participants returns a name-sorted snapshot.
func TestParticipantsSorted(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := reg.Register(ctx, name, makeTrajectory(t, "m", 0, 5))
		require.NoError(t, err)
	}

	all := reg.Participants()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "bravo", all[1].Name())
	assert.Equal(t, "charlie", all[2].Name())
}

// Verify ActiveAt selects only participants whose trajectories span the
// query time, with inclusive endpoints.
func TestActiveAt(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	_, err := reg.Register(ctx, "early", makeTrajectory(t, "m", 0, 10))
	require.NoError(t, err)
	_, err = reg.Register(ctx, "late", makeTrajectory(t, "m", 20, 30))
	require.NoError(t, err)
	_, err = reg.Register(ctx, "long", makeTrajectory(t, "m", 0, 30))
	require.NoError(t, err)

	names := func(ps []*Participant) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name()
		}
		return out
	}

	assert.Equal(t, []string{"early", "long"},
		names(reg.ActiveAt(ctx, scheduleBase.Add(5*time.Second))))
	assert.Equal(t, []string{"late", "long"},
		names(reg.ActiveAt(ctx, scheduleBase.Add(25*time.Second))))
	// "early" finished at 10s, so only the others span 20s.
	assert.Equal(t, []string{"late", "long"},
		names(reg.ActiveAt(ctx, scheduleBase.Add(20*time.Second))))
	assert.Empty(t, names(reg.ActiveAt(ctx, scheduleBase.Add(-time.Second))))
	assert.Empty(t, names(reg.ActiveAt(ctx, scheduleBase.Add(time.Hour))))

	// Inclusive at both trajectory endpoints.
	assert.Contains(t, names(reg.ActiveAt(ctx, scheduleBase)), "early")
	assert.Contains(t, names(reg.ActiveAt(ctx, scheduleBase.Add(10*time.Second))), "early")
}

// Verify registry operations emit spans with participant attributes.
func TestRegisterEmitsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	reg := NewRegistry(nil)
	p, err := reg.Register(context.Background(), "traced_bot", makeTrajectory(t, "m", 0, 5))
	require.NoError(t, err)
	require.NoError(t, reg.Unregister(context.Background(), p.ID()))

	spans := exporter.GetSpans()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name
	}
	assert.Contains(t, names, "Registry.Register")
	assert.Contains(t, names, "Registry.Unregister")
}

// Verify concurrent registration and lookup do not race.
func TestConcurrentAccess(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	trajs := make([]*trajectory.Trajectory, 50)
	for i := range trajs {
		trajs[i] = makeTrajectory(t, "m", 0, 5)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, traj := range trajs {
			_, err := reg.Register(ctx, "bot", traj)
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 50; i++ {
		reg.Len()
		reg.Participants()
		reg.ActiveAt(ctx, scheduleBase)
	}
	<-done

	assert.Equal(t, 50, reg.Len())
}
