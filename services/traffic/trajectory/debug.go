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

import "fmt"

// CheckConsistency verifies the trajectory's structural invariants:
//
//   - the waypoint sequence is strictly ascending by finish time, and
//   - every record's cached index and owner pointer agree with where it
//     actually sits in the sequence, so outstanding handles cannot be
//     pointing at stale bookkeeping.
//
// It is a diagnostic for test harnesses to run after mutating operations,
// especially finish-time edits that trigger reordering. Production code
// never needs it; the container maintains these invariants itself.
func CheckConsistency(t *Trajectory) error {
	for i, r := range t.s.order {
		if r.owner != t.s {
			return fmt.Errorf("record %d: owner pointer does not match trajectory storage", i)
		}
		if r.pos != i {
			return fmt.Errorf("record %d: cached index %d does not match position", i, r.pos)
		}
		if r.profile == nil {
			return fmt.Errorf("record %d: nil profile reference", i)
		}
		if i > 0 && !t.s.order[i-1].finishTime.Before(r.finishTime) {
			return fmt.Errorf("record %d: finish time %v not after predecessor %v",
				i, r.finishTime, t.s.order[i-1].finishTime)
		}
	}
	return nil
}
