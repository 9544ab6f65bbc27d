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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/fleettraffic/pkg/validation"
)

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario document.
//
// The returned scenario has passed structural decoding, field validation,
// and the semantic checks in validateSemantics; it is safe to hand to
// Build.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := scenarioValidate.Struct(&sc); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	if err := validateSemantics(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// validateSemantics enforces the cross-field rules the struct tags cannot
// express: identifier shapes, strictly ascending offsets, queue binding,
// and shape completeness.
func validateSemantics(sc *Scenario) error {
	if err := validation.ValidateMapName(sc.Map); err != nil {
		return err
	}

	for _, p := range sc.Participants {
		if err := validation.ValidateParticipantName(p.Name); err != nil {
			return fmt.Errorf("participant %q: %w", p.Name, err)
		}
		if err := validateProfile(p.Name, &p.Profile); err != nil {
			return err
		}
		for i := 1; i < len(p.Waypoints); i++ {
			if p.Waypoints[i].Offset <= p.Waypoints[i-1].Offset {
				return fmt.Errorf("participant %q, waypoint %d: %w",
					p.Name, i, ErrOffsetOrder)
			}
		}
	}
	return nil
}

func validateProfile(name string, prof *ProfileSpec) error {
	switch prof.Agency {
	case "queued":
		if err := validation.ValidateQueueID(prof.QueueID); err != nil {
			return fmt.Errorf("participant %q: %w: %v", name, ErrQueueID, err)
		}
	default:
		if prof.QueueID != "" {
			return fmt.Errorf("participant %q: %w: queue_id is only valid for queued agency",
				name, ErrQueueID)
		}
	}

	switch prof.Shape.Type {
	case "circle":
		if prof.Shape.Radius <= 0 {
			return fmt.Errorf("participant %q: %w: circle requires radius > 0",
				name, ErrShapeSpec)
		}
	case "box":
		if prof.Shape.Width <= 0 || prof.Shape.Length <= 0 {
			return fmt.Errorf("participant %q: %w: box requires width > 0 and length > 0",
				name, ErrShapeSpec)
		}
	}
	return nil
}
