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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/fleettraffic/services/traffic/scenario"
)

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	sc, err := scenario.Load(path)
	if err != nil {
		logger.Error("scenario rejected", slog.String("path", path), slog.Any("error", err))
		return err
	}

	waypoints := 0
	for _, p := range sc.Participants {
		waypoints += len(p.Waypoints)
	}

	logger.Info("scenario valid",
		slog.String("scenario", sc.Name),
		slog.String("map", sc.Map),
		slog.Int("participants", len(sc.Participants)),
		slog.Int("waypoints", waypoints),
	)
	fmt.Printf("OK: %s (%d participants, %d waypoints on map %q)\n",
		sc.Name, len(sc.Participants), waypoints, sc.Map)
	return nil
}
