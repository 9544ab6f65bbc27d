// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for identifiers that flow
// into the traffic coordination core.
//
// This package contains validators for caller-provided text that is used
// as lookup keys or surfaced in logs: queue identifiers, map names, and
// participant names. Validating at the boundary keeps malformed or
// unbounded input out of the timeline structures and out of log output.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// queueIDPattern matches valid negotiation queue identifiers.
// Allows: letters, digits, dots, underscores, hyphens.
// Max length: 64 characters.
var queueIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]{0,63}$`)

// namePattern matches valid map and participant names.
// Allows: letters, digits, dots, underscores, hyphens, with optional
// single spaces between words. Max length: 128 characters.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9._\-]+( [A-Za-z0-9._\-]+)*$`)

// ValidateQueueID validates a negotiation queue identifier.
//
// Valid queue identifiers:
//   - 1-64 characters
//   - Letters, digits, dots, underscores, or hyphens
//   - No whitespace or control characters
//
// Returns an error if the identifier is invalid.
func ValidateQueueID(queueID string) error {
	if queueID == "" {
		return fmt.Errorf("queue identifier cannot be empty")
	}
	if !queueIDPattern.MatchString(queueID) {
		return fmt.Errorf("invalid queue identifier: %q (must be 1-64 alphanumeric chars, dots, underscores, or hyphens)", queueID)
	}
	return nil
}

// ValidateMapName validates a traffic map name.
//
// Valid map names are 1-128 characters of letters, digits, dots,
// underscores, or hyphens, with single spaces allowed between words.
//
// Returns an error if the name is invalid.
func ValidateMapName(name string) error {
	if name == "" {
		return fmt.Errorf("map name cannot be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("map name too long: %d characters (max 128)", len(name))
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid map name: %q", name)
	}
	return nil
}

// ValidateParticipantName validates a fleet participant name.
//
// Same shape as map names: 1-128 characters, alphanumeric plus dots,
// underscores, hyphens, and single spaces between words.
//
// Returns an error if the name is invalid.
func ValidateParticipantName(name string) error {
	if name == "" {
		return fmt.Errorf("participant name cannot be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("participant name too long: %d characters (max 128)", len(name))
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid participant name: %q", name)
	}
	return nil
}

// SanitizeName normalizes and validates a map or participant name.
// Returns the trimmed name if valid, or an error if invalid.
func SanitizeName(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if err := ValidateMapName(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
