package roster_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// CLOCK TIME
// =============================================================================

func TestParseClock(t *testing.T) {
	ct, err := roster.ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7, ct.Hour())
	assert.Equal(t, 30, ct.Minute())
	assert.Equal(t, "07:30", ct.String())

	for _, bad := range []string{"7:30:00", "24:00", "12:60", "noon", "", "12-30"} {
		_, err := roster.ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
		assert.True(t, roster.IsValidation(err))
	}
}

func TestClockTimeOrdering(t *testing.T) {
	a, b := roster.MustParseClock("09:00"), roster.MustParseClock("17:00")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(roster.NewClockTime(9, 0)))
}

// =============================================================================
// DATE
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := roster.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())

	for _, bad := range []string{"2025-02-29", "2025-13-01", "01/02/2025", ""} {
		_, err := roster.ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTemplateWeekday_MondayIsZero(t *testing.T) {
	// 2025-08-04 is a Monday.
	for i := 0; i < 7; i++ {
		d := roster.MustParseDate("2025-08-04").AddDays(i)
		assert.Equal(t, i, d.TemplateWeekday())
	}
}

func TestEndInstant_OvernightWrap(t *testing.T) {
	e := shift("2025-08-04", "23:30", "07:30")
	assert.Equal(t, 8*time.Hour, e.EndInstant().Sub(e.StartInstant()))

	// A same-day shift does not wrap.
	e = shift("2025-08-04", "09:00", "17:00")
	assert.Equal(t, 8*time.Hour, e.EndInstant().Sub(e.StartInstant()))
}

// =============================================================================
// RATE TABLE VALIDATION
// =============================================================================

func TestRateTableValidate(t *testing.T) {
	assert.NoError(t, roster.DefaultRateTable().Validate())

	rt := roster.DefaultRateTable()
	rt.PayMode = "casual"
	err := rt.Validate()
	require.Error(t, err)
	assert.True(t, roster.IsValidation(err))

	rt = roster.DefaultRateTable()
	rt.Rates[roster.RateSaturday] = decimal.NewFromFloat(-1)
	assert.Error(t, rt.Validate())

	rt = roster.DefaultRateTable()
	rt.Rates[roster.RateSunday] = decimal.RequireFromString("74.005")
	assert.Error(t, rt.Validate())
}

func TestValidShiftType(t *testing.T) {
	assert.True(t, roster.ValidShiftType(roster.ShiftSleepover))
	assert.False(t, roster.ValidShiftType("overtime"))
}
