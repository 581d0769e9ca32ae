package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/roster-engine/export"
	"github.com/warp/roster-engine/roster"
)

func sampleEntries() []roster.RosterEntry {
	staffID, staffName := "s1", "Angela"
	return []roster.RosterEntry{
		{
			ID:          "e1",
			Date:        roster.MustParseDate("2025-06-02"),
			StaffID:     &staffID,
			StaffName:   &staffName,
			Start:       roster.MustParseClock("09:00"),
			End:         roster.MustParseClock("17:00"),
			HoursWorked: decimal.NewFromInt(8),
			BasePay:     decimal.RequireFromString("336.00"),
			TotalPay:    decimal.RequireFromString("336.00"),
		},
		{
			ID:                 "e2",
			Date:               roster.MustParseDate("2025-06-02"),
			Start:              roster.MustParseClock("23:30"),
			End:                roster.MustParseClock("07:30"),
			IsSleepover:        true,
			HoursWorked:        decimal.NewFromInt(8),
			SleepoverAllowance: decimal.RequireFromString("175.00"),
			TotalPay:           decimal.RequireFromString("175.00"),
		},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, sampleEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"Date,Day,Start,End,Staff,Shift Type,Hours,Base Pay,Sleepover Allowance,Total Pay",
		lines[0])
	assert.Contains(t, lines[1], "2025-06-02,Monday,09:00,17:00,Angela,weekday_day")
	assert.Contains(t, lines[1], "336.00")
	// Unassigned sleepover row.
	assert.Contains(t, lines[2], ",sleepover,")
	assert.Contains(t, lines[2], "175.00")
}

func TestExcel(t *testing.T) {
	month := roster.MonthKey{Year: 2025, Month: 6}

	var buf bytes.Buffer
	require.NoError(t, export.Excel(&buf, month, sampleEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Roster 2025-06")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-06-02", rows[1][0])
	assert.Equal(t, "Angela", rows[1][4])

	// Summary groups per staff with unassigned shifts last.
	summary, err := f.GetRows("Staff Summary")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "Angela", summary[1][0])
	assert.Equal(t, "Unassigned", summary[2][0])
	assert.Equal(t, "336.00", summary[1][3])
}
