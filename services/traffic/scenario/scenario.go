// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scenario loads fleet traffic scenarios from YAML.
//
// A scenario describes a set of participants and the waypoint timelines
// they will follow, with times expressed as offsets from a start time
// chosen at build time. Parsing is strict: structural problems surface
// from the YAML decoder, field constraints from struct validation tags,
// and cross-field rules (offset ordering, queue binding) from semantic
// checks. Build materializes a validated scenario into a live
// schedule.Registry.
package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrOffsetOrder indicates a participant's waypoint offsets are not
// strictly ascending.
var ErrOffsetOrder = errors.New("waypoint offsets must be strictly ascending")

// ErrQueueID indicates a queue identifier is missing for a queued profile
// or present on a non-queued one.
var ErrQueueID = errors.New("queue identifier mismatch")

// ErrShapeSpec indicates a shape description is incomplete for its type.
var ErrShapeSpec = errors.New("invalid shape specification")

// scenarioValidate is the shared validator for scenario documents.
var scenarioValidate *validator.Validate

func init() {
	scenarioValidate = validator.New()
}

// Duration wraps time.Duration with YAML support for Go duration strings
// like "1.5s" or "2m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CircleShape is a circular footprint of the given radius in meters.
type CircleShape struct {
	Radius float64
}

// BoxShape is a rectangular footprint in meters.
type BoxShape struct {
	Width  float64
	Length float64
}

// ShapeSpec describes a participant footprint in a scenario document.
type ShapeSpec struct {
	Type   string  `yaml:"type" validate:"required,oneof=circle box"`
	Radius float64 `yaml:"radius,omitempty" validate:"gte=0"`
	Width  float64 `yaml:"width,omitempty" validate:"gte=0"`
	Length float64 `yaml:"length,omitempty" validate:"gte=0"`
}

// ProfileSpec describes how a participant moves through contested space.
type ProfileSpec struct {
	Agency  string    `yaml:"agency" validate:"required,oneof=strict autonomous queued"`
	Shape   ShapeSpec `yaml:"shape" validate:"required"`
	QueueID string    `yaml:"queue_id,omitempty"`
}

// WaypointSpec is one timeline entry: where the participant finishes a
// motion segment, when (relative to the scenario start), and at what
// velocity.
type WaypointSpec struct {
	Offset   Duration   `yaml:"offset"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity,omitempty"`
}

// ParticipantSpec is one fleet member in a scenario document.
type ParticipantSpec struct {
	Name      string         `yaml:"name" validate:"required"`
	Profile   ProfileSpec    `yaml:"profile" validate:"required"`
	Waypoints []WaypointSpec `yaml:"waypoints" validate:"required,min=1,dive"`
}

// Scenario is a complete scenario document.
type Scenario struct {
	Name         string            `yaml:"name" validate:"required"`
	Map          string            `yaml:"map" validate:"required"`
	Participants []ParticipantSpec `yaml:"participants" validate:"required,min=1,dive"`
}
