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
)

// resolveQueryTime parses --at as either an absolute RFC3339 time or a
// duration offset from start. Empty means the start time itself.
func resolveQueryTime(start time.Time) (time.Time, error) {
	if queryAt == "" {
		return start, nil
	}
	if t, err := time.Parse(time.RFC3339, queryAt); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(queryAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: want RFC3339 or a duration like 15s", queryAt)
	}
	return start.Add(d), nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]

	start, err := resolveStart()
	if err != nil {
		return err
	}
	at, err := resolveQueryTime(start)
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

	active := reg.ActiveAt(cmd.Context(), at)
	fmt.Printf("%d of %d participants active at %s\n",
		len(active), reg.Len(), at.Format(time.RFC3339))

	for _, p := range active {
		traj := p.Trajectory()
		it := traj.Find(at)
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
		fmt.Printf("  %s: heading to (%.2f, %.2f, %.2f) by %s\n",
			p.Name(), pos.X, pos.Y, pos.Z, ft.Format(time.RFC3339))
	}
	return nil
}
