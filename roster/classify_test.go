package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// shift builds an entry on a given date with HH:MM times and no overrides.
func shift(date, start, end string) roster.RosterEntry {
	return roster.RosterEntry{
		ID:       "shift-1",
		Date:     roster.MustParseDate(date),
		Start:    roster.MustParseClock(start),
		End:      roster.MustParseClock(end),
		Override: roster.Auto(),
	}
}

func sleepoverShift(date, start, end string) roster.RosterEntry {
	e := shift(date, start, end)
	e.IsSleepover = true
	return e
}

// =============================================================================
// AUTOMATIC CLASSIFICATION
// =============================================================================

func TestClassify_WeekdayHourHeuristic(t *testing.T) {
	// 2025-08-01 is a Friday.
	tests := []struct {
		name       string
		start, end string
		want       roster.ShiftType
	}{
		{"morning shift", "07:30", "15:30", roster.ShiftWeekdayDay},
		{"afternoon ending at 8pm", "15:00", "20:00", roster.ShiftWeekdayDay},
		{"starts at 8pm", "20:00", "23:00", roster.ShiftWeekdayEvening},
		{"starts before 6am", "05:00", "13:00", roster.ShiftWeekdayNight},
		{"wraps past midnight", "23:30", "07:30", roster.ShiftWeekdayNight},
		{"end hour equals start hour", "22:00", "22:30", roster.ShiftWeekdayNight},
		{"ends exactly at midnight", "16:00", "00:00", roster.ShiftWeekdayDay},
		{"boundary 6am start", "06:00", "14:00", roster.ShiftWeekdayDay},
		{"boundary 19:59 start", "19:59", "23:00", roster.ShiftWeekdayDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roster.Classify(shift("2025-08-01", tt.start, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_WeekendBeatsHourHeuristic(t *testing.T) {
	// GIVEN: a late-evening shift on a Saturday and a Sunday
	// THEN: the weekday hour rules never apply on weekends

	sat := shift("2025-08-02", "20:00", "23:00")
	assert.Equal(t, time.Saturday, sat.Date.Weekday())
	assert.Equal(t, roster.ShiftSaturday, roster.Classify(sat))

	sun := shift("2025-08-03", "05:00", "13:00")
	assert.Equal(t, roster.ShiftSunday, roster.Classify(sun))
}

func TestClassify_AutomaticSleepoverFlag(t *testing.T) {
	// The automatic sleepover flag wins over day/time detection.
	e := sleepoverShift("2025-08-02", "23:30", "07:30") // Saturday
	assert.Equal(t, roster.ShiftSleepover, roster.Classify(e))
}

func TestClassify_NoAutomaticPublicHoliday(t *testing.T) {
	// GIVEN: Christmas Day, a weekday, with no override
	// THEN: the classifier does not consult any holiday calendar;
	//       public_holiday is only reachable via a manual category

	e := shift("2025-12-25", "09:00", "17:00") // Thursday
	assert.Equal(t, roster.ShiftWeekdayDay, roster.Classify(e))

	e.Override = roster.Category(roster.ShiftPublicHoliday)
	assert.Equal(t, roster.ShiftPublicHoliday, roster.Classify(e))
}

// =============================================================================
// OVERRIDE PRECEDENCE
// =============================================================================

func TestClassify_ForcedSleepoverWinsOverEverything(t *testing.T) {
	// A Sunday day shift forced to sleepover is a sleepover.
	e := shift("2025-08-03", "09:00", "17:00")
	e.Override = roster.Sleepover(true)
	assert.Equal(t, roster.ShiftSleepover, roster.Classify(e))
}

func TestClassify_SuppressedSleepoverFallsThrough(t *testing.T) {
	// GIVEN: a template-flagged sleepover with the flag manually cleared
	// THEN: classification proceeds automatically with the flag off

	e := sleepoverShift("2025-08-01", "23:30", "07:30") // Friday overnight
	e.Override = roster.Sleepover(false)
	assert.Equal(t, roster.ShiftWeekdayNight, roster.Classify(e))
}

func TestClassify_ManualCategoryUsedDirectly(t *testing.T) {
	e := shift("2025-08-01", "09:00", "17:00")
	e.Override = roster.Category(roster.ShiftSunday)
	assert.Equal(t, roster.ShiftSunday, roster.Classify(e))

	// A manual "sleepover" category forces sleepover-style classification.
	e.Override = roster.Category(roster.ShiftSleepover)
	assert.Equal(t, roster.ShiftSleepover, roster.Classify(e))
	assert.True(t, roster.IsSleepoverShift(e))
}

func TestOverrideFromFields_RoundTrip(t *testing.T) {
	dayType := roster.ShiftWeekdayDay
	yes, no := true, false

	tests := []struct {
		name       string
		manualType *roster.ShiftType
		manualSO   *bool
		want       roster.Override
	}{
		{"both nil is auto", nil, nil, roster.Auto()},
		{"forced sleepover wins", &dayType, &yes, roster.Sleepover(true)},
		{"explicit type with suppressed flag", &dayType, &no, roster.Category(dayType)},
		{"suppressed flag alone", nil, &no, roster.Sleepover(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roster.OverrideFromFields(tt.manualType, tt.manualSO))
		})
	}
}

// =============================================================================
// HOURLY CATEGORY (wake-hour pricing window)
// =============================================================================

func TestHourlyCategory_IgnoresSleepoverStatus(t *testing.T) {
	// The window of a Friday overnight sleepover prices wake hours at
	// the weekday night rate.
	e := sleepoverShift("2025-08-01", "23:30", "07:30")
	assert.Equal(t, roster.ShiftWeekdayNight, roster.HourlyCategory(e))

	// A Saturday sleepover prices at the Saturday rate.
	e = sleepoverShift("2025-08-02", "23:30", "07:30")
	assert.Equal(t, roster.ShiftSaturday, roster.HourlyCategory(e))
}
