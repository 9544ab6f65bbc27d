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
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/fleettraffic/pkg/logging"
	"github.com/AleutianAI/fleettraffic/pkg/validation"
	"github.com/AleutianAI/fleettraffic/services/traffic/trajectory"
)

var tracer = otel.Tracer("fleettraffic.schedule")

// Participant is one fleet member known to a Registry, bound to the
// trajectory it has committed to.
type Participant struct {
	id         uuid.UUID
	name       string
	trajectory *trajectory.Trajectory
}

// ID returns the participant's registry-assigned identifier.
func (p *Participant) ID() uuid.UUID {
	return p.id
}

// Name returns the participant's display name.
func (p *Participant) Name() string {
	return p.name
}

// Trajectory returns the participant's committed trajectory. The registry
// retains ownership; see the package doc for synchronization rules.
func (p *Participant) Trajectory() *trajectory.Trajectory {
	return p.trajectory
}

// Registry tracks the active participants of a traffic schedule.
type Registry struct {
	mu           sync.RWMutex
	participants map[uuid.UUID]*Participant
	logger       *logging.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to the
// default logger.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registry{
		participants: make(map[uuid.UUID]*Participant),
		logger:       logger.With("component", "schedule.registry"),
	}
}

// Register adds a participant with the given name and trajectory, taking
// ownership of the trajectory. The caller's handle is drained; use
// Trajectory.Copy before registering to keep a usable copy.
//
// Returns ErrInvalidName if the name fails validation, ErrNilTrajectory
// for a nil trajectory, and ErrEmptyTrajectory for one with no waypoints.
func (r *Registry) Register(ctx context.Context, name string, traj *trajectory.Trajectory) (*Participant, error) {
	_, span := tracer.Start(ctx, "Registry.Register",
		trace.WithAttributes(attribute.String("participant.name", name)),
	)
	defer span.End()

	if err := validation.ValidateParticipantName(name); err != nil {
		span.SetStatus(codes.Error, "invalid name")
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	if traj == nil {
		span.SetStatus(codes.Error, ErrNilTrajectory.Error())
		return nil, ErrNilTrajectory
	}
	if traj.Size() == 0 {
		span.SetStatus(codes.Error, ErrEmptyTrajectory.Error())
		return nil, ErrEmptyTrajectory
	}

	p := &Participant{
		id:         uuid.New(),
		name:       name,
		trajectory: traj.Move(),
	}

	r.mu.Lock()
	r.participants[p.id] = p
	count := len(r.participants)
	r.mu.Unlock()

	span.SetAttributes(
		attribute.String("participant.id", p.id.String()),
		attribute.Int("registry.size", count),
	)
	r.logger.Info("participant registered",
		slog.String("participant_id", p.id.String()),
		slog.String("name", name),
		slog.String("map", p.trajectory.MapName()),
		slog.Int("waypoints", p.trajectory.Size()),
	)
	return p, nil
}

// Unregister removes a participant and releases its trajectory.
//
// Returns ErrUnknownParticipant if the ID is not registered.
func (r *Registry) Unregister(ctx context.Context, id uuid.UUID) error {
	_, span := tracer.Start(ctx, "Registry.Unregister",
		trace.WithAttributes(attribute.String("participant.id", id.String())),
	)
	defer span.End()

	r.mu.Lock()
	p, ok := r.participants[id]
	if ok {
		delete(r.participants, id)
	}
	r.mu.Unlock()

	if !ok {
		span.SetStatus(codes.Error, ErrUnknownParticipant.Error())
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}

	r.logger.Info("participant unregistered",
		slog.String("participant_id", id.String()),
		slog.String("name", p.name),
	)
	return nil
}

// Get returns the participant with the given ID, or false if none is
// registered.
func (r *Registry) Get(id uuid.UUID) (*Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	return p, ok
}

// Len returns the number of registered participants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

// Participants returns all registered participants sorted by name, with
// ID as a tiebreaker for duplicate names.
func (r *Registry) Participants() []*Participant {
	r.mu.RLock()
	out := make([]*Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].name != out[j].name {
			return out[i].name < out[j].name
		}
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

// ActiveAt returns the participants whose trajectories span the given
// time, sorted by name. A trajectory spans t when its start time is not
// after t and its finish time is not before t.
func (r *Registry) ActiveAt(ctx context.Context, t time.Time) []*Participant {
	_, span := tracer.Start(ctx, "Registry.ActiveAt",
		trace.WithAttributes(attribute.String("query.time", t.Format(time.RFC3339Nano))),
	)
	defer span.End()

	all := r.Participants()
	active := make([]*Participant, 0, len(all))
	for _, p := range all {
		start, ok := p.trajectory.StartTime()
		if !ok {
			continue
		}
		finish, _ := p.trajectory.FinishTime()
		if start.After(t) || finish.Before(t) {
			continue
		}
		active = append(active, p)
	}

	span.SetAttributes(
		attribute.Int("registry.size", len(all)),
		attribute.Int("query.active", len(active)),
	)
	return active
}
