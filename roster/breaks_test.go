package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/roster-engine/roster"
)

func assigned(id, date, start, end, staffID, staffName string) roster.RosterEntry {
	e := shift(date, start, end)
	e.ID = id
	e.StaffID = &staffID
	e.StaffName = &staffName
	return e
}

// =============================================================================
// GAP DETECTION
// =============================================================================

func TestCheckBreaks_NineHourGapViolates(t *testing.T) {
	// GIVEN: an existing evening shift ending 23:30 and a proposed shift
	//        starting 08:30 the next morning (9-hour gap)
	// WHEN:  the proposed assignment is checked
	// THEN:  a violation reports gap_hours = 9.0

	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", "Angela"),
	}
	proposed := assigned("b", "2025-08-05", "08:30", "16:30", "s1", "Angela")

	v := roster.CheckBreaks(proposed, existing)
	require.NotNil(t, v)
	assert.True(t, dec("9").Equal(v.GapHours))
	assert.Equal(t, "s1", v.StaffID)
	assert.Equal(t, "Angela has only 9.0 hours break between shifts. Minimum 10 hours required.", v.Message)
}

func TestCheckBreaks_TenHourGapIsCompliant(t *testing.T) {
	// Exactly 10 hours is not a violation.
	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", "Angela"),
	}
	proposed := assigned("b", "2025-08-05", "09:30", "17:30", "s1", "Angela")

	assert.Nil(t, roster.CheckBreaks(proposed, existing))
}

func TestCheckBreaks_OverlapIsNotAGapViolation(t *testing.T) {
	// A negative gap (overlapping shifts) is outside this check's scope.
	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "09:00", "17:00", "s1", "Angela"),
	}
	proposed := assigned("b", "2025-08-04", "15:00", "22:00", "s1", "Angela")

	assert.Nil(t, roster.CheckBreaks(proposed, existing))
}

func TestCheckBreaks_ProposedBeforeExisting(t *testing.T) {
	// The proposed shift can be the earlier side of the offending pair.
	existing := []roster.RosterEntry{
		assigned("a", "2025-08-05", "07:30", "15:30", "s1", "Angela"),
	}
	proposed := assigned("b", "2025-08-04", "15:30", "23:30", "s1", "Angela")

	v := roster.CheckBreaks(proposed, existing)
	require.NotNil(t, v)
	assert.True(t, dec("8").Equal(v.GapHours))
}

// =============================================================================
// EXEMPTIONS AND SCOPE
// =============================================================================

func TestCheckBreaks_SleepoverExemptEitherSide(t *testing.T) {
	// GIVEN: a sleepover ending 07:30 and a proposed morning shift at 07:30
	// THEN:  no violation; sleepovers are exempt on either side

	sleepover := assigned("a", "2025-08-04", "23:30", "07:30", "s1", "Angela")
	sleepover.IsSleepover = true

	proposed := assigned("b", "2025-08-05", "07:30", "15:30", "s1", "Angela")
	assert.Nil(t, roster.CheckBreaks(proposed, []roster.RosterEntry{sleepover}))

	// And the proposed shift being the sleepover is equally exempt.
	day := assigned("c", "2025-08-05", "15:30", "23:30", "s1", "Angela")
	proposedSleepover := assigned("d", "2025-08-05", "23:30", "07:30", "s1", "Angela")
	proposedSleepover.IsSleepover = true
	assert.Nil(t, roster.CheckBreaks(proposedSleepover, []roster.RosterEntry{day}))
}

func TestCheckBreaks_SuppressedSleepoverIsNotExempt(t *testing.T) {
	// An overnight whose sleepover flag was manually cleared counts as a
	// normal shift for rest purposes.
	overnight := assigned("a", "2025-08-04", "23:30", "07:30", "s1", "Angela")
	overnight.IsSleepover = true
	overnight.Override = roster.Sleepover(false)

	proposed := assigned("b", "2025-08-05", "08:30", "16:30", "s1", "Angela")
	v := roster.CheckBreaks(proposed, []roster.RosterEntry{overnight})
	require.NotNil(t, v)
	assert.True(t, dec("1").Equal(v.GapHours))
}

func TestCheckBreaks_OnlyPairsTouchingProposed(t *testing.T) {
	// GIVEN: two existing shifts already violating each other
	// WHEN:  an unrelated compliant shift is proposed
	// THEN:  the historical pair is not re-audited

	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", "Angela"),
		assigned("b", "2025-08-05", "05:00", "13:00", "s1", "Angela"),
	}
	proposed := assigned("c", "2025-08-10", "09:00", "17:00", "s1", "Angela")

	assert.Nil(t, roster.CheckBreaks(proposed, existing))
}

func TestCheckBreaks_EditedShiftReplacesItsOldVersion(t *testing.T) {
	// GIVEN: the proposed shift is an edit of an existing entry
	// THEN:  the stale version does not count against the timeline

	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", "Angela"),
		// Old version of the shift being edited; would violate.
		assigned("b", "2025-08-05", "05:00", "13:00", "s1", "Angela"),
	}
	// Edit moves shift "b" to a compliant start.
	proposed := assigned("b", "2025-08-05", "09:30", "17:30", "s1", "Angela")

	assert.Nil(t, roster.CheckBreaks(proposed, existing))
}

func TestCheckBreaks_UnassignedProposedIsSkipped(t *testing.T) {
	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", "Angela"),
	}
	proposed := shift("2025-08-05", "05:00", "13:00")
	proposed.ID = "b"

	assert.Nil(t, roster.CheckBreaks(proposed, existing))
}

func TestCheckBreaks_FallsBackToStaffIDInMessage(t *testing.T) {
	existing := []roster.RosterEntry{
		assigned("a", "2025-08-04", "15:30", "23:30", "s1", ""),
	}
	proposed := assigned("b", "2025-08-05", "08:30", "16:30", "s1", "")
	proposed.StaffName = nil

	v := roster.CheckBreaks(proposed, existing)
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "s1 has only")
}
