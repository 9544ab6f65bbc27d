// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/fleettraffic/pkg/logging"
	"github.com/AleutianAI/fleettraffic/services/traffic/schedule"
	"github.com/AleutianAI/fleettraffic/services/traffic/trajectory"
)

var tracer = otel.Tracer("fleettraffic.scenario")

// Build materializes a validated scenario into a schedule registry.
// Waypoint offsets are resolved against start. A nil logger falls back to
// the default logger.
func Build(ctx context.Context, sc *Scenario, start time.Time, logger *logging.Logger) (*schedule.Registry, error) {
	if logger == nil {
		logger = logging.Default()
	}

	ctx, span := tracer.Start(ctx, "scenario.Build",
		trace.WithAttributes(
			attribute.String("scenario.name", sc.Name),
			attribute.String("scenario.map", sc.Map),
			attribute.Int("scenario.participants", len(sc.Participants)),
		),
	)
	defer span.End()

	reg := schedule.NewRegistry(logger)
	for _, p := range sc.Participants {
		traj, err := buildTrajectory(sc.Map, &p, start)
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.Name, err)
		}
		if _, err := reg.Register(ctx, p.Name, traj); err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.Name, err)
		}
	}

	logger.Info("scenario built",
		slog.String("scenario", sc.Name),
		slog.String("map", sc.Map),
		slog.Int("participants", reg.Len()),
	)
	return reg, nil
}

// buildTrajectory converts one participant spec into a trajectory with
// absolute finish times.
func buildTrajectory(mapName string, p *ParticipantSpec, start time.Time) (*trajectory.Trajectory, error) {
	profile, err := buildProfile(&p.Profile)
	if err != nil {
		return nil, err
	}

	traj := trajectory.New(mapName)
	for i, wp := range p.Waypoints {
		res, err := traj.Insert(
			start.Add(wp.Offset.Std()),
			profile,
			trajectory.Vector3{X: wp.Position[0], Y: wp.Position[1], Z: wp.Position[2]},
			trajectory.Vector3{X: wp.Velocity[0], Y: wp.Velocity[1], Z: wp.Velocity[2]},
		)
		if err != nil {
			return nil, err
		}
		if !res.Inserted {
			return nil, fmt.Errorf("waypoint %d: duplicate finish time", i)
		}
	}
	return traj, nil
}

func buildProfile(spec *ProfileSpec) (*trajectory.Profile, error) {
	shape, err := buildShape(&spec.Shape)
	if err != nil {
		return nil, err
	}
	switch spec.Agency {
	case "strict":
		return trajectory.MakeStrict(shape)
	case "autonomous":
		return trajectory.MakeAutonomous(shape)
	case "queued":
		return trajectory.MakeQueued(shape, spec.QueueID)
	default:
		return nil, fmt.Errorf("unknown agency %q", spec.Agency)
	}
}

func buildShape(spec *ShapeSpec) (trajectory.Shape, error) {
	switch spec.Type {
	case "circle":
		return CircleShape{Radius: spec.Radius}, nil
	case "box":
		return BoxShape{Width: spec.Width, Length: spec.Length}, nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", spec.Type)
	}
}
