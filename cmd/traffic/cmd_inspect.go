// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/fleettraffic/services/traffic/scenario"
	"github.com/AleutianAI/fleettraffic/services/traffic/trajectory"
)

// resolveStart parses the --start flag, defaulting to the current time.
func resolveStart() (time.Time, error) {
	if startTime == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --start value %q: %w", startTime, err)
	}
	return t, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	start, err := resolveStart()
	if err != nil {
		return err
	}

	sc, err := scenario.Load(path)
	if err != nil {
		logger.Error("scenario rejected", slog.String("path", path), slog.Any("error", err))
		return err
	}

	reg, err := scenario.Build(cmd.Context(), sc, start, logger)
	if err != nil {
		logger.Error("scenario build failed", slog.Any("error", err))
		return err
	}

	fmt.Printf("Scenario %q on map %q, starting %s\n",
		sc.Name, sc.Map, start.Format(time.RFC3339))

	for _, p := range reg.Participants() {
		traj := p.Trajectory()
		if err := trajectory.CheckConsistency(traj); err != nil {
			return fmt.Errorf("participant %q: inconsistent timeline: %w", p.Name(), err)
		}

		fmt.Printf("\n%s (%s): %d waypoints over %s\n",
			p.Name(), p.ID(), traj.Size(), traj.Duration())

		for it := traj.Begin(); !it.IsEnd(); {
			seg, err := it.Segment()
			if err != nil {
				return err
			}
			ft, err := seg.FinishTime()
			if err != nil {
				return err
			}
			pos, err := seg.FinishPosition()
			if err != nil {
				return err
			}
			fmt.Printf("  %s  (%.2f, %.2f, %.2f)\n",
				ft.Format(time.RFC3339), pos.X, pos.Y, pos.Z)

			next, err := it.Next()
			if err != nil {
				break
			}
			it = next
		}
	}
	return nil
}
