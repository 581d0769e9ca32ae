/*
generate.go - Monthly roster generation from shift templates

PURPOSE:
  Produces one roster entry per (calendar day x applicable template) for
  a month. Entries start unassigned with pay fully computed, so the grid
  renders complete figures immediately; assigning staff later does not
  change the pay, only who earns it.

  Generation is pure: deduplication against entries that already exist
  (a re-generate of a partially built month) is the caller's job, keyed
  on (date, template ID).
*/
package roster

// GenerateMonth builds unassigned, pay-computed entries for every day
// of the month from the templates matching each day's weekday. Entry
// IDs are left empty for the caller to assign. A template whose pay
// cannot be computed fails generation for the whole month; a rate table
// should be validated before bulk use.
func GenerateMonth(month MonthKey, templates []ShiftTemplate, rates RateTable) ([]RosterEntry, error) {
	byWeekday := make(map[int][]ShiftTemplate)
	for _, t := range templates {
		byWeekday[t.DayOfWeek] = append(byWeekday[t.DayOfWeek], t)
	}

	var entries []RosterEntry
	for day := 1; day <= month.Days(); day++ {
		date := NewDate(month.Year, month.Month, day)
		for _, t := range byWeekday[date.TemplateWeekday()] {
			entry := RosterEntry{
				Date:        date,
				TemplateID:  t.ID,
				Start:       t.Start,
				End:         t.End,
				IsSleepover: t.IsSleepover,
				Override:    Auto(),
			}
			computed, err := ComputePay(entry, rates)
			if err != nil {
				return nil, err
			}
			entries = append(entries, computed)
		}
	}
	return entries, nil
}

// DefaultTemplates returns the weekly template set the system ships
// with: a morning, an afternoon, an evening, and an overnight sleepover
// shift for every weekday.
func DefaultTemplates() []ShiftTemplate {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	shape := []struct {
		start, end string
		sleepover  bool
	}{
		{"07:30", "15:30", false},
		{"15:00", "20:00", false},
		{"15:30", "23:30", false},
		{"23:30", "07:30", true},
	}

	var templates []ShiftTemplate
	for dow, day := range days {
		for i, s := range shape {
			start := s.start
			// Tuesday and Thursday run a longer midday second shift.
			if i == 1 && (dow == 1 || dow == 3) {
				start = "12:00"
			}
			templates = append(templates, ShiftTemplate{
				Name:        day + " Shift " + string(rune('1'+i)),
				Start:       MustParseClock(start),
				End:         MustParseClock(s.end),
				IsSleepover: s.sleepover,
				DayOfWeek:   dow,
			})
		}
	}
	return templates
}

// DefaultStaffNames is the roster the system seeds on first run.
var DefaultStaffNames = []string{
	"Angela", "Chanelle", "Rose", "Caroline", "Nox", "Elina",
	"Kayla", "Rhet", "Nikita", "Molly", "Felicity", "Issey",
}
