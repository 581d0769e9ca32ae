/*
sqlite_test.go - Round-trip tests for the SQLite store

Uses an in-memory database per test. The interesting cases are the ones
where storage representation could drift from the domain model: decimal
TEXT columns, nullable override fields, and month-prefix date queries.
*/
package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/roster"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// STAFF
// =============================================================================

func TestStaffRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveStaff(ctx, roster.Staff{ID: "s1", Name: "Angela", Active: true}))
	require.NoError(t, s.SaveStaff(ctx, roster.Staff{ID: "s2", Name: "Rose", Active: true}))

	got, err := s.GetStaff(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Angela", got.Name)
	assert.True(t, got.Active)
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := s.GetStaff(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.DeactivateStaff(ctx, "s2"))

	active, err := s.ListStaff(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "s1", active[0].ID)

	all, err := s.ListStaff(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// =============================================================================
// TEMPLATES
// =============================================================================

func TestTemplateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tmpl := roster.ShiftTemplate{
		ID:          "t1",
		Name:        "Monday Shift 4",
		Start:       roster.MustParseClock("23:30"),
		End:         roster.MustParseClock("07:30"),
		IsSleepover: true,
		DayOfWeek:   0,
	}
	require.NoError(t, s.SaveTemplate(ctx, tmpl))

	got, err := s.GetTemplate(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tmpl, *got)

	// Upsert updates in place.
	tmpl.Name = "Monday Sleepover"
	require.NoError(t, s.SaveTemplate(ctx, tmpl))
	list, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Monday Sleepover", list[0].Name)

	require.NoError(t, s.DeleteTemplate(ctx, "t1"))
	gone, err := s.GetTemplate(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListTemplates_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	add := func(id string, dow int, start string) {
		require.NoError(t, s.SaveTemplate(ctx, roster.ShiftTemplate{
			ID: id, Name: id, DayOfWeek: dow,
			Start: roster.MustParseClock(start), End: roster.MustParseClock("23:00"),
		}))
	}
	add("c", 1, "07:30")
	add("a", 0, "15:30")
	add("b", 0, "07:30")

	list, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

// =============================================================================
// ROSTER ENTRIES
// =============================================================================

func fullEntry() roster.RosterEntry {
	staffID, staffName := "s1", "Angela"
	rate := dec("50.00")
	wake := dec("3.5")
	return roster.RosterEntry{
		ID:               "e1",
		Date:             roster.MustParseDate("2025-06-02"),
		TemplateID:       "t1",
		StaffID:          &staffID,
		StaffName:        &staffName,
		Start:            roster.MustParseClock("23:30"),
		End:              roster.MustParseClock("07:30"),
		IsSleepover:      true,
		Override:         roster.Sleepover(true),
		ManualHourlyRate: &rate,
		WakeHours:        &wake,

		HoursWorked:        dec("8"),
		BasePay:            dec("75"),
		SleepoverAllowance: dec("175"),
		TotalPay:           dec("250"),
	}
}

func TestEntryRoundTrip_AllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := fullEntry()
	require.NoError(t, s.SaveEntry(ctx, e))

	got, err := s.GetEntry(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, e.Date, got.Date)
	assert.Equal(t, e.Start, got.Start)
	assert.Equal(t, e.End, got.End)
	assert.True(t, got.IsSleepover)
	assert.Equal(t, roster.Sleepover(true), got.Override)
	require.NotNil(t, got.ManualHourlyRate)
	assert.True(t, dec("50.00").Equal(*got.ManualHourlyRate))
	require.NotNil(t, got.WakeHours)
	assert.True(t, dec("3.5").Equal(*got.WakeHours))
	assert.True(t, dec("250").Equal(got.TotalPay))
	require.NotNil(t, got.StaffName)
	assert.Equal(t, "Angela", *got.StaffName)
}

func TestEntryRoundTrip_NullableFieldsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := roster.RosterEntry{
		ID:          "e2",
		Date:        roster.MustParseDate("2025-06-03"),
		Start:       roster.MustParseClock("09:00"),
		End:         roster.MustParseClock("17:00"),
		Override:    roster.Auto(),
		HoursWorked: dec("8"),
		BasePay:     dec("336"),
		TotalPay:    dec("336"),
	}
	require.NoError(t, s.SaveEntry(ctx, e))

	got, err := s.GetEntry(ctx, "e2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.StaffID)
	assert.Nil(t, got.ManualHourlyRate)
	assert.Nil(t, got.ManualBasePay)
	assert.Nil(t, got.WakeHours)
	assert.True(t, got.Override.IsAuto())
}

func TestEntryOverrideVariants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := func(id string, o roster.Override) roster.RosterEntry {
		return roster.RosterEntry{
			ID:       id,
			Date:     roster.MustParseDate("2025-06-02"),
			Start:    roster.MustParseClock("09:00"),
			End:      roster.MustParseClock("17:00"),
			Override: o,
		}
	}

	overrides := []roster.Override{
		roster.Auto(),
		roster.Category(roster.ShiftPublicHoliday),
		roster.Sleepover(true),
		roster.Sleepover(false),
	}
	for i, o := range overrides {
		id := string(rune('a' + i))
		require.NoError(t, s.SaveEntry(ctx, base(id, o)))
		got, err := s.GetEntry(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, o, got.Override)
	}
}

func TestEntriesForMonth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	save := func(id, date string) {
		require.NoError(t, s.SaveEntry(ctx, roster.RosterEntry{
			ID: id, Date: roster.MustParseDate(date),
			Start: roster.MustParseClock("09:00"), End: roster.MustParseClock("17:00"),
		}))
	}
	save("jun1", "2025-06-30")
	save("jun2", "2025-06-01")
	save("jul", "2025-07-01")

	june, err := s.EntriesForMonth(ctx, roster.MonthKey{Year: 2025, Month: 6})
	require.NoError(t, err)
	require.Len(t, june, 2)
	// Sorted by date.
	assert.Equal(t, "jun2", june[0].ID)
	assert.Equal(t, "jun1", june[1].ID)
}

func TestEntryExistsAndDeleteMonth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := roster.RosterEntry{
		ID: "e1", Date: roster.MustParseDate("2025-06-02"), TemplateID: "t1",
		Start: roster.MustParseClock("09:00"), End: roster.MustParseClock("17:00"),
	}
	require.NoError(t, s.SaveEntry(ctx, e))

	exists, err := s.EntryExists(ctx, e.Date, "t1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.EntryExists(ctx, e.Date, "other")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := s.DeleteMonth(ctx, roster.MonthKey{Year: 2025, Month: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	got, err := s.GetEntry(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntriesForStaff(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staffID := "s1"
	for i, date := range []string{"2025-06-10", "2025-06-01"} {
		require.NoError(t, s.SaveEntry(ctx, roster.RosterEntry{
			ID: string(rune('a' + i)), Date: roster.MustParseDate(date), StaffID: &staffID,
			Start: roster.MustParseClock("09:00"), End: roster.MustParseClock("17:00"),
		}))
	}
	other := "s2"
	require.NoError(t, s.SaveEntry(ctx, roster.RosterEntry{
		ID: "z", Date: roster.MustParseDate("2025-06-05"), StaffID: &other,
		Start: roster.MustParseClock("09:00"), End: roster.MustParseClock("17:00"),
	}))

	got, err := s.EntriesForStaff(ctx, staffID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID) // earlier date first
}

func TestSaveEntry_RoundsMoneyAtWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := roster.RosterEntry{
		ID: "e1", Date: roster.MustParseDate("2025-06-02"),
		Start: roster.MustParseClock("09:00"), End: roster.MustParseClock("09:20"),

		HoursWorked: dec("0.3333333333333333"),
		BasePay:     dec("13.99999999999999986"),
		TotalPay:    dec("13.99999999999999986"),
	}
	require.NoError(t, s.SaveEntry(ctx, e))

	got, err := s.GetEntry(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, dec("0.33").Equal(got.HoursWorked))
	assert.True(t, dec("14.00").Equal(got.TotalPay))
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestRateTableRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// (nil, nil) before anything is saved.
	rt, err := s.GetRateTable(ctx)
	require.NoError(t, err)
	assert.Nil(t, rt)

	saved := roster.DefaultRateTable()
	saved.PayMode = roster.PayModeSCHADS
	require.NoError(t, s.SaveRateTable(ctx, saved))

	rt, err = s.GetRateTable(ctx)
	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, roster.PayModeSCHADS, rt.PayMode)
	require.Len(t, rt.Rates, len(roster.RateKeys))
	assert.True(t, dec("60.02").Equal(rt.Rates[roster.RateSleepoverSCHADS]))

	// Saving again replaces the table.
	saved.Rates[roster.RateWeekdayDay] = dec("45.00")
	require.NoError(t, s.SaveRateTable(ctx, saved))
	rt, err = s.GetRateTable(ctx)
	require.NoError(t, err)
	assert.True(t, dec("45.00").Equal(rt.Rates[roster.RateWeekdayDay]))
}

// =============================================================================
// RESET
// =============================================================================

func TestReset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveStaff(ctx, roster.Staff{ID: "s1", Name: "Angela", Active: true}))
	require.NoError(t, s.SaveEntry(ctx, fullEntry()))
	require.NoError(t, s.SaveRateTable(ctx, roster.DefaultRateTable()))

	require.NoError(t, s.Reset(ctx))

	staff, err := s.ListStaff(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, staff)

	rt, err := s.GetRateTable(ctx)
	require.NoError(t, err)
	assert.Nil(t, rt)
}
