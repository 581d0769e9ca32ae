/*
Package export renders a month of roster entries to spreadsheet formats.

PURPOSE:
  Produces the payroll handover artifacts: an Excel workbook with a
  shift-level sheet plus a per-staff summary sheet, and a flat CSV with
  the same shift-level columns. Values are taken from the entries'
  cached pay figures; nothing is recomputed here.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/warp/roster-engine/roster"
)

var columns = []string{
	"Date", "Day", "Start", "End", "Staff", "Shift Type",
	"Hours", "Base Pay", "Sleepover Allowance", "Total Pay",
}

// Excel writes the month's roster as an .xlsx workbook.
func Excel(w io.Writer, month roster.MonthKey, entries []roster.RosterEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Roster " + month.String()
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, columns); err != nil {
		return err
	}
	for i, e := range entries {
		for col, val := range rowValues(e) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := writeSummary(f, entries); err != nil {
		return err
	}
	return f.Write(w)
}

// CSV writes the month's roster as flat comma-separated rows.
func CSV(w io.Writer, entries []roster.RosterEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, e := range entries {
		record := make([]string, len(columns))
		for i, val := range rowValues(e) {
			record[i] = fmt.Sprint(val)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rowValues(e roster.RosterEntry) []any {
	staff := ""
	if e.StaffName != nil {
		staff = *e.StaffName
	}
	return []any{
		e.Date.String(),
		e.Date.Weekday().String(),
		e.Start.String(),
		e.End.String(),
		staff,
		string(roster.Classify(e)),
		e.HoursWorked.StringFixed(2),
		e.BasePay.StringFixed(2),
		e.SleepoverAllowance.StringFixed(2),
		e.TotalPay.StringFixed(2),
	}
}

// writeSummary adds a per-staff totals sheet. Unassigned shifts are
// grouped under a single "Unassigned" row at the end.
func writeSummary(f *excelize.File, entries []roster.RosterEntry) error {
	const sheet = "Staff Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet, []string{"Staff", "Shifts", "Hours", "Total Pay"}); err != nil {
		return err
	}

	type tally struct {
		shifts int
		hours  decimal.Decimal
		pay    decimal.Decimal
	}
	totals := make(map[string]*tally)
	for _, e := range entries {
		name := "Unassigned"
		if e.StaffName != nil && *e.StaffName != "" {
			name = *e.StaffName
		}
		t, ok := totals[name]
		if !ok {
			t = &tally{}
			totals[name] = t
		}
		t.shifts++
		t.hours = t.hours.Add(e.HoursWorked)
		t.pay = t.pay.Add(e.TotalPay)
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		if name != "Unassigned" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := totals["Unassigned"]; ok {
		names = append(names, "Unassigned")
	}

	for i, name := range names {
		t := totals[name]
		values := []any{name, t.shifts, t.hours.StringFixed(2), t.pay.StringFixed(2)}
		for col, val := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, style)
	}
	return nil
}
