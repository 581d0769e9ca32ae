/*
breaks.go - Rest-period compliance between consecutive shifts

PURPOSE:
  Detects shifts scheduled with less than the minimum 10-hour break for
  the same staff member. The check is advisory: it produces a
  BreakViolation for a human to accept or deny, and never blocks or
  mutates anything itself.

SCOPE:
  Only adjacent pairs that include the proposed (new or edited) shift
  are evaluated. Historical pairs untouched by the change are not
  re-audited; that matches how assignments have always been reviewed.

EXEMPTION:
  Sleepover shifts are exempt on either side of a gap - a sleepover
  followed by (or following) a short gap is not a violation.
*/
package roster

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// MinBreakHours is the minimum rest period between two non-sleepover
// shifts for the same staff member.
var MinBreakHours = decimal.NewFromInt(10)

// BreakViolation describes one offending adjacent pair. It is a
// transient result value, never persisted.
type BreakViolation struct {
	StaffID  string
	Current  RosterEntry
	Next     RosterEntry
	GapHours decimal.Decimal
	Message  string
	Details  string
}

// CheckBreaks validates a proposed shift against the staff member's
// existing shifts. Any prior version of the proposed shift (same ID) is
// replaced by the proposed one. Returns nil when the assignment is
// compliant, or the first violating pair touching the proposed shift.
func CheckBreaks(proposed RosterEntry, existing []RosterEntry) *BreakViolation {
	if !proposed.Assigned() {
		return nil
	}
	staffID := *proposed.StaffID

	timeline := make([]RosterEntry, 0, len(existing)+1)
	for _, e := range existing {
		if e.ID == proposed.ID {
			continue
		}
		timeline = append(timeline, e)
	}
	timeline = append(timeline, proposed)

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].StartInstant().Before(timeline[j].StartInstant())
	})

	for i := 0; i < len(timeline)-1; i++ {
		current, next := timeline[i], timeline[i+1]
		if current.ID != proposed.ID && next.ID != proposed.ID {
			continue
		}

		gapMins := next.StartInstant().Sub(current.EndInstant()).Minutes()
		gap := decimal.NewFromFloat(gapMins).Div(sixty)
		if gap.IsNegative() || !gap.LessThan(MinBreakHours) {
			continue
		}

		if IsSleepoverShift(current) || IsSleepoverShift(next) {
			continue
		}

		name := staffID
		if proposed.StaffName != nil && *proposed.StaffName != "" {
			name = *proposed.StaffName
		}
		return &BreakViolation{
			StaffID:  staffID,
			Current:  current,
			Next:     next,
			GapHours: gap,
			Message: fmt.Sprintf("%s has only %s hours break between shifts. Minimum 10 hours required.",
				name, gap.StringFixed(1)),
			Details: fmt.Sprintf("%s %s-%s → %s %s-%s",
				current.Date, current.Start, current.End,
				next.Date, next.Start, next.End),
		}
	}

	return nil
}
